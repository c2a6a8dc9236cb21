package driven

import (
	"context"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

// RenderInput is everything a renderer needs. All of it is read-only.
type RenderInput struct {
	Model    *domain.LineageModel
	Bios     map[string]domain.ResolvedBio
	Summary  domain.IssueSummary
	Settings domain.DocumentSettings
}

// DocumentRenderer turns the aggregated model into document source.
type DocumentRenderer interface {
	// Render returns the full document source. Output depends only on
	// the input and the renderer's clock.
	Render(ctx context.Context, in RenderInput) ([]byte, error)
}

// DocumentWriter stores rendered document source.
type DocumentWriter interface {
	// Write replaces the document at path with content.
	Write(ctx context.Context, path string, content []byte) error
}

// Boilerplate names for fixed document sections.
const (
	BoilerplateLicense      = "license"
	BoilerplateIntroduction = "introduction"
)

// BoilerplateStore provides the fixed license and introduction text.
type BoilerplateStore interface {
	// Get returns the text for a boilerplate name.
	Get(name string) (string, error)

	// Names returns all boilerplate names.
	Names() []string
}
