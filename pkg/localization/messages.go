// Package localization maps backend error messages to the Bengali
// user-facing texts shown by the front end. Matching is by substring
// against the underlying error, kept behind this single function so the
// fragile matching is not duplicated at call sites.
package localization

import "strings"

var errorTranslations = []struct {
	substring string
	message   string
}{
	{"Email rate limit exceeded", "ইমেইল লিমিট শেষ হয়েছে। দয়া করে কিছুক্ষণ পর চেষ্টা করুন।"},
	{"already registered", "এই ইমেইল দিয়ে ইতিপূর্বেই অ্যাকাউন্ট খোলা হয়েছে।"},
	{"Invalid login credentials", "ভুল ইমেইল বা পাসওয়ার্ড দেওয়া হয়েছে।"},
	{"Password should be at least", "পাসওয়ার্ড অন্তত ৬ অক্ষরের হতে হবে।"},
	{"Database error", "সার্ভার সমস্যা। দয়া করে একটু পর আবার চেষ্টা করুন।"},
}

const fallbackMessage = "একটি সমস্যা হয়েছে। আবার চেষ্টা করুন।"

// TranslateError returns the Bengali message for a backend error string.
// Unknown errors map to a generic retry message rather than leaking
// internals to the user.
func TranslateError(msg string) string {
	for _, t := range errorTranslations {
		if strings.Contains(msg, t.substring) {
			return t.message
		}
	}
	return fallbackMessage
}
