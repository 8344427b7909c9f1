package localization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	assert.Equal(t,
		"এই ইমেইল দিয়ে ইতিপূর্বেই অ্যাকাউন্ট খোলা হয়েছে।",
		TranslateError("User already registered"))

	assert.Equal(t,
		"ভুল ইমেইল বা পাসওয়ার্ড দেওয়া হয়েছে।",
		TranslateError("Invalid login credentials"))

	assert.Equal(t,
		"পাসওয়ার্ড অন্তত ৬ অক্ষরের হতে হবে।",
		TranslateError("Password should be at least 6 characters"))

	assert.Equal(t,
		"সার্ভার সমস্যা। দয়া করে একটু পর আবার চেষ্টা করুন।",
		TranslateError("Database error"))
}

func TestTranslateErrorMatchesSubstring(t *testing.T) {
	assert.Equal(t,
		"ভুল ইমেইল বা পাসওয়ার্ড দেওয়া হয়েছে।",
		TranslateError("auth: Invalid login credentials (attempt 2)"))
}

func TestTranslateErrorFallback(t *testing.T) {
	assert.Equal(t,
		"একটি সমস্যা হয়েছে। আবার চেষ্টা করুন।",
		TranslateError("some backend explosion"))
	assert.Equal(t,
		"একটি সমস্যা হয়েছে। আবার চেষ্টা করুন।",
		TranslateError(""))
}
