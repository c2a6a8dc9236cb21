package driven

import (
	"context"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

// BioSource loads teacher bios.
type BioSource interface {
	// Name identifies the source in diagnostics.
	Name() string

	// Load reads every bio the source knows about, keyed by formatted
	// teacher name. Malformed entries are reported to log and loaded with
	// placeholders. A missing source is not an error and yields an empty table.
	Load(ctx context.Context, log *domain.IssueLog) (domain.BioTable, error)
}

// BioWriter persists a single teacher bio.
type BioWriter interface {
	// Save writes the bio for teacher and returns where it was written.
	Save(ctx context.Context, teacher string, bio domain.Bio) (string, error)
}
