package models

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportStatus enum
type ReportStatus string

const (
	StatusPending       ReportStatus = "Pending"
	StatusInvestigating ReportStatus = "Investigating"
	StatusResolved      ReportStatus = "Resolved"
	StatusRejected      ReportStatus = "Rejected"
)

var validStatuses = map[ReportStatus]bool{
	StatusPending:       true,
	StatusInvestigating: true,
	StatusResolved:      true,
	StatusRejected:      true,
}

// ParseStatus validates a status string. Any valid status may replace any
// other; there is no transition table.
func ParseStatus(s string) (ReportStatus, error) {
	st := ReportStatus(s)
	if !validStatuses[st] {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return st, nil
}

// Priority enum, assigned once at submission from AI analysis or fallback.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

// Categories of extortion/corruption incidents.
var Categories = []string{
	"রাস্তা বা ফুটপাতে চাঁদাবাজি",
	"দোকান বা ব্যবসা প্রতিষ্ঠানে চাঁদাবাজি",
	"সরকারি অফিসে ঘুষ বা দুর্নীতি",
	"পরিবহন খাতে চাঁদাবাজি",
	"রাজনৈতিক প্রভাব খাটিয়ে চাঁদাবাজি",
	"অন্যান্য",
}

// Districts selectable as incident location.
var Districts = []string{
	"Dhaka", "Chittagong", "Sylhet", "Rajshahi", "Khulna", "Barisal", "Rangpur", "Mymensingh",
	"Gazipur", "Narayanganj", "Comilla",
}

// DistrictDhaka unlocks the sub-location drill-down.
const DistrictDhaka = "Dhaka"

// DhakaSubLocations are the unions/municipalities selectable when the
// district is Dhaka.
var DhakaSubLocations = []string{
	"সাভার পৌরসভা",
	"আশুলিয়া ইউনিয়ন",
	"ধামসোনা ইউনিয়ন",
	"ইয়ারপুর ইউনিয়ন",
	"পাথালিয়া ইউনিয়ন",
	"শিমুলিয়া ইউনিয়ন",
	"বিরুলিয়া ইউনিয়ন",
	"বনগাঁও ইউনিয়ন",
	"তেঁতুলঝোড়া ইউনিয়ন",
	"ভাকুর্তা ইউনিয়ন",
	"কাউন্দিয়া ইউনিয়ন",
	"আমিনবাজার ইউনিয়ন",
	"সাভার ইউনিয়ন",
}

// SubLocationSavar unlocks the ward drill-down.
const SubLocationSavar = "সাভার পৌরসভা"

// SavarWards are the wards selectable inside Savar municipality.
var SavarWards = []string{
	"ওয়ার্ড নং ১",
	"ওয়ার্ড নং ২",
	"ওয়ার্ড নং ৩",
	"ওয়ার্ড নং ৪",
	"ওয়ার্ড নং ৫",
	"ওয়ার্ড নং ৬",
	"ওয়ার্ড নং ৭",
	"ওয়ার্ড নং ৮",
	"ওয়ার্ড নং ৯",
}

// EvidenceType is "image" or "video".
type EvidenceType string

const (
	EvidenceImage EvidenceType = "image"
	EvidenceVideo EvidenceType = "video"
)

// Evidence is one uploaded attachment. The list is populated at submission
// and immutable afterward.
type Evidence struct {
	URL  string       `bson:"url" json:"url"`
	Type EvidenceType `bson:"type" json:"type"`
}

// Review is a citizen rating of how a Resolved report was handled.
// Reviews are appended, never edited or deleted.
type Review struct {
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment" json:"comment"`
	AuthorName string    `bson:"author_name" json:"author_name"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

type Report struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TicketNumber string             `bson:"ticket_number" json:"ticketNumber"`
	Title        string             `bson:"title" json:"title"`
	Category     string             `bson:"category" json:"category"`
	Location     string             `bson:"location" json:"location"`
	SubLocation  string             `bson:"sub_location,omitempty" json:"subLocation,omitempty"`
	Ward         string             `bson:"ward,omitempty" json:"ward,omitempty"`
	Description  string             `bson:"description" json:"description"`
	// Date is the calendar date of the incident, distinct from Timestamp.
	Date          string       `bson:"date" json:"date"`
	Status        ReportStatus `bson:"status" json:"status"`
	Priority      Priority     `bson:"priority" json:"priority"`
	AISummary     string       `bson:"ai_summary,omitempty" json:"aiSummary,omitempty"`
	Evidence      []Evidence   `bson:"evidence,omitempty" json:"evidence,omitempty"`
	Reviews       []Review     `bson:"reviews,omitempty" json:"reviews,omitempty"`
	IsAnonymous   bool         `bson:"is_anonymous" json:"isAnonymous"`
	ReporterName  string       `bson:"reporter_name" json:"reporterName"`
	ReporterEmail string       `bson:"reporter_email" json:"reporterEmail"`
	ReporterPhone string       `bson:"reporter_phone" json:"reporterPhone"`
	Timestamp     time.Time    `bson:"timestamp" json:"timestamp"`
}

var ticketPattern = regexp.MustCompile(`^CB-\d{6}$`)

// NewTicketNumber generates a human-facing ticket of the form CB-NNNNNN
// with NNNNNN in [100000, 999999]. Uniqueness is not store-enforced; the
// 900k space keeps collisions unlikely at this system's volume.
func NewTicketNumber() string {
	return fmt.Sprintf("CB-%d", 100000+rand.IntN(900000))
}

// ValidTicketNumber reports whether s has the exact CB-NNNNNN shape.
func ValidTicketNumber(s string) bool {
	return ticketPattern.MatchString(s)
}

// NormalizeTicket prepares user input for ticket comparison: trims
// whitespace and upper-cases, so " cb-123456 " matches "CB-123456".
func NormalizeTicket(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// MaskAnonymous hides reporter identity on public-facing copies of a
// report. Storage always keeps the real identity.
func (r Report) MaskAnonymous() Report {
	if r.IsAnonymous {
		r.ReporterName = "পরিচয় গোপন"
		r.ReporterEmail = ""
		r.ReporterPhone = ""
	}
	return r
}

// AverageRating returns the arithmetic mean of review ratings rounded to
// one decimal place, with the review count. Zero reviews yield (0, 0).
func (r Report) AverageRating() (float64, int) {
	if len(r.Reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, rv := range r.Reviews {
		sum += rv.Rating
	}
	avg := float64(sum) / float64(len(r.Reviews))
	return float64(int(avg*10+0.5)) / 10, len(r.Reviews)
}
