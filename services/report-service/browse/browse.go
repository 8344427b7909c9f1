// Package browse implements the two read-only query shapes over the
// report collection: the public filtered listing and the anonymous
// track-by-identity lookup.
package browse

import (
	"strings"

	"chandabaj-reporting-system/services/report-service/models"
)

// Filter holds the public browse criteria. Every field is optional; an
// empty field matches everything. Search is a case-insensitive substring
// match against title, description, and ticket number; the remaining
// fields are exact matches, AND'ed together.
type Filter struct {
	Search      string
	Category    string
	District    string
	SubLocation string
	Ward        string
}

func (f Filter) Matches(r models.Report) bool {
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		if !strings.Contains(strings.ToLower(r.Title), search) &&
			!strings.Contains(strings.ToLower(r.Description), search) &&
			!strings.Contains(strings.ToLower(r.TicketNumber), search) {
			return false
		}
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.District != "" && r.Location != f.District {
		return false
	}
	if f.SubLocation != "" && r.SubLocation != f.SubLocation {
		return false
	}
	if f.Ward != "" && r.Ward != f.Ward {
		return false
	}
	return true
}

// Apply filters a materialized report list. Re-applying identical filters
// yields the same set.
func Apply(reports []models.Report, f Filter) []models.Report {
	filtered := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if f.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Track resolves an anonymous lookup. The query is matched as a ticket
// number first (case-insensitive, whitespace-trimmed), then as an exact
// reporter email or phone. This is the only path by which an anonymous
// submitter sees their report's status.
func Track(reports []models.Report, query string) []models.Report {
	ticket := models.NormalizeTicket(query)
	if ticket == "" {
		return nil
	}

	var matches []models.Report
	for _, r := range reports {
		if models.NormalizeTicket(r.TicketNumber) == ticket {
			matches = append(matches, r)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	contact := strings.TrimSpace(query)
	for _, r := range reports {
		if strings.EqualFold(r.ReporterEmail, contact) || r.ReporterPhone == contact {
			matches = append(matches, r)
		}
	}
	return matches
}
