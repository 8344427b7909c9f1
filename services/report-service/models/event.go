package models

import "time"

// Event types carried on the reports exchange.
const (
	EventNewReport    = "new_report"
	EventStatusUpdate = "status_update"
)

// ReportEvent is the message published for report lifecycle changes and
// consumed by the dispatcher and notification services.
type ReportEvent struct {
	Type         string       `json:"type"`
	ReportID     string       `json:"report_id"`
	TicketNumber string       `json:"ticket_number"`
	Title        string       `json:"title"`
	Category     string       `json:"category"`
	Location     string       `json:"location"`
	Status       ReportStatus `json:"status"`
	Priority     Priority     `json:"priority"`
	IsAnonymous  bool         `json:"is_anonymous"`
	ReporterName string       `json:"reporter_name"`
	CreatedAt    time.Time    `json:"created_at"`
}
