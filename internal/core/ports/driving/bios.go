package driving

import (
	"context"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

// BioService manages teacher bios.
type BioService interface {
	// Create writes a bio for a titled teacher name and returns its location.
	Create(ctx context.Context, teacher string, bio domain.Bio) (string, error)

	// List returns every known bio keyed by formatted teacher name,
	// together with any issues found while loading.
	List(ctx context.Context) (domain.BioTable, domain.IssueSummary, error)
}
