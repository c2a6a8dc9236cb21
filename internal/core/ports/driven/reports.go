package driven

import (
	"context"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

// ReportStore persists run diagnostics.
type ReportStore interface {
	// Save stores a run report.
	Save(ctx context.Context, report *domain.RunReport) error

	// Get retrieves a run report by ID.
	// Returns domain.ErrNotFound if the report does not exist.
	Get(ctx context.Context, id string) (*domain.RunReport, error)

	// List returns the most recent reports, newest first.
	List(ctx context.Context, limit int) ([]domain.RunReportInfo, error)
}
