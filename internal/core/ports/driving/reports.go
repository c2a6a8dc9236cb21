package driving

import (
	"context"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

// ReportService exposes stored run diagnostics.
type ReportService interface {
	// List returns recent run reports, newest first.
	List(ctx context.Context, limit int) ([]domain.RunReportInfo, error)

	// Get returns one run report with its detailed issues.
	Get(ctx context.Context, id string) (*domain.RunReport, error)
}
