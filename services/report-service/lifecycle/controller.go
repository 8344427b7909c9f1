// Package lifecycle owns the in-memory report collection and mediates
// every mutation. The store is the system of record; the controller keeps
// a read-through cached copy that is reloaded after each successful write
// rather than patched optimistically (with one exception: a local append
// immediately after a successful submission, so the caller can surface the
// new ticket without waiting for the refetch).
package lifecycle

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"chandabaj-reporting-system/pkg/middleware"
	"chandabaj-reporting-system/services/report-service/analysis"
	"chandabaj-reporting-system/services/report-service/models"
	"chandabaj-reporting-system/services/report-service/store"
)

// Uploader persists one evidence file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

// Analyzer produces the priority/summary triple for a description. It
// must be total: no error return, fallback on any failure.
type Analyzer interface {
	Analyze(ctx context.Context, description string) analysis.Result
}

// PublishFunc sends a lifecycle event to the message bus. A nil publisher
// disables events.
type PublishFunc func(routingKey string, payload interface{}) error

// EvidenceFile is one attachment as received from the submitter.
type EvidenceFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type Controller struct {
	mu      sync.RWMutex
	reports []models.Report

	store    store.Store
	analyzer Analyzer
	uploader Uploader
	publish  PublishFunc
}

func NewController(s store.Store, a Analyzer, u Uploader, publish PublishFunc) *Controller {
	return &Controller{
		store:    s,
		analyzer: a,
		uploader: u,
		publish:  publish,
	}
}

// List returns the cached reports, newest first. Pure read.
func (c *Controller) List() []models.Report {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Report, len(c.reports))
	copy(out, c.reports)
	return out
}

// Refresh reloads the collection from the store. Fails soft: on a
// transport error the previous in-memory list is retained and a warning
// logged; the caller sees stale data rather than an error.
func (c *Controller) Refresh(ctx context.Context) {
	reports, err := c.store.ListReports(ctx)
	if err != nil {
		middleware.LogWarn("", "Failed to refresh reports, keeping cached list", err)
		return
	}
	c.setReports(reports)
}

func (c *Controller) setReports(reports []models.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Timestamp.After(reports[j].Timestamp)
	})
	c.mu.Lock()
	c.reports = reports
	c.mu.Unlock()
}

// SubmitResult reports the outcome of a submission: the durable ticket
// reference and any evidence files skipped for being oversized.
type SubmitResult struct {
	TicketNumber string
	Report       models.Report
	SkippedFiles []string
}

// Submit validates the draft, runs analysis, uploads evidence, and
// persists the report. Either the whole report is persisted and the local
// list refreshed, or an error is returned and the local list is untouched.
// Evidence already uploaded when a later step fails is not cleaned up.
func (c *Controller) Submit(ctx context.Context, draft models.Draft, files []EvidenceFile) (*SubmitResult, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var skipped []string
	var accepted []EvidenceFile
	for _, f := range files {
		if f.Size > models.MaxEvidenceFileSize {
			skipped = append(skipped, fmt.Sprintf("%s exceeds the 10MB limit", f.Name))
			continue
		}
		accepted = append(accepted, f)
	}

	result := c.analyzer.Analyze(ctx, draft.Description)

	var evidence []models.Evidence
	for _, f := range accepted {
		url, err := c.uploader.Upload(ctx, f.Name, f.ContentType, f.Reader, f.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to upload evidence %s: %w", f.Name, err)
		}
		evidence = append(evidence, models.Evidence{
			URL:  url,
			Type: evidenceType(f.ContentType),
		})
	}

	report := models.Report{
		TicketNumber:  models.NewTicketNumber(),
		Title:         strings.TrimSpace(draft.Title),
		Category:      draft.Category,
		Location:      draft.Location,
		SubLocation:   draft.SubLocation,
		Ward:          draft.Ward,
		Description:   strings.TrimSpace(draft.Description),
		Date:          draft.Date,
		Status:        models.StatusPending,
		Priority:      result.Priority,
		AISummary:     result.Summary,
		Evidence:      evidence,
		IsAnonymous:   draft.IsAnonymous,
		ReporterName:  strings.TrimSpace(draft.ReporterName),
		ReporterEmail: strings.TrimSpace(draft.ReporterEmail),
		ReporterPhone: strings.TrimSpace(draft.ReporterPhone),
		Timestamp:     time.Now(),
	}
	if report.Date == "" {
		report.Date = report.Timestamp.Format("2006-01-02")
	}

	if err := c.store.InsertReport(ctx, &report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	// Optimistic local append so the ticket confirmation can render
	// before the refetch lands.
	c.mu.Lock()
	c.reports = append([]models.Report{report}, c.reports...)
	c.mu.Unlock()

	c.Refresh(ctx)
	c.publishEvent(models.EventNewReport, report)

	return &SubmitResult{
		TicketNumber: report.TicketNumber,
		Report:       report,
		SkippedFiles: skipped,
	}, nil
}

// UpdateStatus applies any valid status over any current status; there is
// no transition table.
func (c *Controller) UpdateStatus(ctx context.Context, id string, status models.ReportStatus) error {
	if err := c.store.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	c.Refresh(ctx)

	if report, err := c.store.FindReport(ctx, id); err == nil {
		c.publishEvent(models.EventStatusUpdate, *report)
	}
	return nil
}

// Delete removes a report permanently. Confirmation happens at the
// caller's boundary; this operation is irreversible.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.store.DeleteReport(ctx, id); err != nil {
		return err
	}
	c.Refresh(ctx)
	return nil
}

// SubmitReview appends a rating+comment to a report's review list via
// read-modify-write. Two concurrent reviewers race as last-write-wins:
// one review can be silently dropped. Accepted consistency level; the
// store offers no concurrency token.
func (c *Controller) SubmitReview(ctx context.Context, id string, rating int, comment, authorName string) (*models.Report, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	report, err := c.store.FindReport(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews := append(report.Reviews, models.Review{
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		AuthorName: strings.TrimSpace(authorName),
		CreatedAt:  time.Now(),
	})

	if err := c.store.SetReviews(ctx, id, reviews); err != nil {
		return nil, err
	}

	report.Reviews = reviews
	c.Refresh(ctx)
	return report, nil
}

func (c *Controller) publishEvent(eventType string, report models.Report) {
	if c.publish == nil {
		return
	}

	event := models.ReportEvent{
		Type:         eventType,
		ReportID:     report.ID.Hex(),
		TicketNumber: report.TicketNumber,
		Title:        report.Title,
		Category:     report.Category,
		Location:     report.Location,
		Status:       report.Status,
		Priority:     report.Priority,
		IsAnonymous:  report.IsAnonymous,
		ReporterName: report.ReporterName,
		CreatedAt:    report.Timestamp,
	}
	if event.IsAnonymous {
		event.ReporterName = "পরিচয় গোপন"
	}

	if err := c.publish("report."+routingSuffix(eventType), event); err != nil {
		middleware.LogWarn("", "Report saved but event publish failed", err)
	}
}

func routingSuffix(eventType string) string {
	if eventType == models.EventStatusUpdate {
		return "updated"
	}
	return "created"
}

func evidenceType(contentType string) models.EvidenceType {
	if strings.HasPrefix(contentType, "video/") {
		return models.EvidenceVideo
	}
	return models.EvidenceImage
}
