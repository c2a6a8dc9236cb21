package driven

import (
	"context"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

// RecordSource yields raw lineage records, one per input row,
// regardless of how the rows are stored.
type RecordSource interface {
	// Files lists the input files in a stable order.
	// A source that cannot be listed returns domain.ErrSourceUnavailable.
	Files(ctx context.Context) ([]string, error)

	// ReadFile returns every non-blank row of one file as a RawRecord.
	// Row problems are not errors; only an unreadable file is.
	ReadFile(ctx context.Context, path string) ([]domain.RawRecord, error)
}

// ChangeEvent reports a modified input path.
type ChangeEvent struct {
	Path string
}

// Watcher pushes change notifications for input directories.
type Watcher interface {
	// Watch listens for changes under the given directories until ctx is done.
	// Both channels are closed when watching stops.
	Watch(ctx context.Context, dirs ...string) (<-chan ChangeEvent, <-chan error, error)
}

// RawFileStore gives line-level access to raw input files for merging.
type RawFileStore interface {
	// Files lists the raw input files in a stable order.
	Files(ctx context.Context) ([]string, error)

	// Lines returns the trimmed, non-blank lines of a file.
	Lines(ctx context.Context, path string) ([]string, error)

	// Create writes lines to a new file in the raw data directory and returns its path.
	Create(ctx context.Context, name string, lines []string) (string, error)

	// Remove deletes a raw input file.
	Remove(ctx context.Context, path string) error
}
