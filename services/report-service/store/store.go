// Package store is the report-service's gateway to the system of record.
// The lifecycle controller depends on the Store interface only; the mongo
// implementation lives alongside it.
package store

import (
	"context"
	"errors"

	"chandabaj-reporting-system/services/report-service/models"
)

// ErrNotFound is returned when no report matches the given id.
var ErrNotFound = errors.New("report not found")

type Store interface {
	// ListReports returns all reports ordered newest first by timestamp.
	ListReports(ctx context.Context) ([]models.Report, error)
	InsertReport(ctx context.Context, report *models.Report) error
	FindReport(ctx context.Context, id string) (*models.Report, error)
	UpdateStatus(ctx context.Context, id string, status models.ReportStatus) error
	// SetReviews replaces the full review list on a report. Callers
	// read-modify-write; last write wins.
	SetReviews(ctx context.Context, id string, reviews []models.Review) error
	DeleteReport(ctx context.Context, id string) error
}
