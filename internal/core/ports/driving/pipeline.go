package driving

import (
	"context"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

// LineagePipeline runs ingestion, validation, aggregation, rendering and build.
type LineagePipeline interface {
	// Check ingests and validates input files without rendering.
	// With no paths, every file of the record source is checked.
	Check(ctx context.Context, paths ...string) (*CheckResult, error)

	// Generate runs the pipeline through writing the document source.
	Generate(ctx context.Context) (*GenerateResult, error)

	// Build generates the document and compiles it with the toolchain.
	Build(ctx context.Context) (*BuildResult, error)

	// Watch re-runs fn whenever input changes, until ctx is cancelled.
	Watch(ctx context.Context, fn func(ctx context.Context) error) error
}

// CheckResult is the outcome of validating input.
type CheckResult struct {
	Report *domain.RunReport

	// Records are the records that passed validation, in input order.
	Records []domain.ValidatedRecord
}

// GenerateResult is the outcome of rendering the document.
type GenerateResult struct {
	Report *domain.RunReport
	Model  *domain.LineageModel

	// OutputPath is where the document source was written.
	OutputPath string
}

// BuildResult is the outcome of a full build.
type BuildResult struct {
	GenerateResult

	// ArtifactPath is the compiled document.
	ArtifactPath string

	// Passes lists the toolchain stages that ran, in order.
	Passes []string
}
