package driving

import "context"

// MergeService combines raw input files.
type MergeService interface {
	// Merge concatenates every raw file, drops exact duplicate lines and
	// writes the result as a new file. Originals are removed only when
	// deleteOriginals is true.
	Merge(ctx context.Context, deleteOriginals bool) (*MergeResult, error)
}

// MergeResult describes a completed merge.
type MergeResult struct {
	// OutputPath is the merged file.
	OutputPath string

	// Inputs are the files that were merged.
	Inputs []string

	// LinesRead counts non-blank lines before de-duplication.
	LinesRead int

	// LinesWritten counts lines after de-duplication.
	LinesWritten int

	// Removed lists originals that were deleted.
	Removed []string
}
