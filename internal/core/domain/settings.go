package domain

import "time"

const unknownDescription = "Unknown"

// DocumentOrder controls how teachers and addresses are ordered in the document.
type DocumentOrder string

// Available document orders.
const (
	// DocumentOrderFirstSeen keeps the order in which records were read.
	DocumentOrderFirstSeen DocumentOrder = "first_seen"

	// DocumentOrderAlphabetical sorts teachers and addresses by name at render time.
	DocumentOrderAlphabetical DocumentOrder = "alphabetical"
)

// IsValid returns true if the order is recognised.
func (o DocumentOrder) IsValid() bool {
	switch o {
	case DocumentOrderFirstSeen, DocumentOrderAlphabetical:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o DocumentOrder) String() string {
	return string(o)
}

// Description returns a human-readable description of the order.
func (o DocumentOrder) Description() string {
	switch o {
	case DocumentOrderFirstSeen:
		return "First seen (input order)"
	case DocumentOrderAlphabetical:
		return "Alphabetical"
	default:
		return unknownDescription
	}
}

// MissingBioMode controls how a teacher without a bio is rendered.
type MissingBioMode string

// Available missing bio modes.
const (
	// MissingBioPlaceholder renders a "biography unavailable" sentence.
	MissingBioPlaceholder MissingBioMode = "placeholder"

	// MissingBioOmit renders no bio paragraph at all.
	MissingBioOmit MissingBioMode = "omit"
)

// IsValid returns true if the mode is recognised.
func (m MissingBioMode) IsValid() bool {
	switch m {
	case MissingBioPlaceholder, MissingBioOmit:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m MissingBioMode) String() string {
	return string(m)
}

// PathSettings locates inputs and outputs.
type PathSettings struct {
	// RawData is the directory of raw record files.
	RawData string

	// Bios is the directory of teacher bio files.
	Bios string

	// Output is the rendered document path.
	Output string

	// DataDir holds the report database.
	DataDir string
}

// DocumentSettings controls rendering.
type DocumentSettings struct {
	Title  string
	Author string
	Order  DocumentOrder

	MissingBio MissingBioMode
}

// NormaliseSettings controls optional field normalisation.
type NormaliseSettings struct {
	// TitleCase title-cases student names and rankings during validation.
	TitleCase bool
}

// ToolchainSettings configures the external typesetting tools.
type ToolchainSettings struct {
	// Typesetter is the document compiler, run twice.
	Typesetter string

	// Indexer builds the index between the two typesetter passes.
	Indexer string

	// Timeout bounds each individual pass.
	Timeout time.Duration
}

// ReportSettings controls run report persistence.
type ReportSettings struct {
	Persist bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Paths     PathSettings
	Document  DocumentSettings
	Normalise NormaliseSettings
	Toolchain ToolchainSettings
	Report    ReportSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// DataDir is left empty; adapters resolve it to ~/.lineage/data.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Paths: PathSettings{
			RawData: "RAW Data",
			Bios:    "Bios",
			Output:  "lineage_document.tex",
		},
		Document: DocumentSettings{
			Title:      "Lineage",
			Author:     "Lineage Committee",
			Order:      DocumentOrderFirstSeen,
			MissingBio: MissingBioPlaceholder,
		},
		Toolchain: ToolchainSettings{
			Typesetter: "pdflatex",
			Indexer:    "makeindex",
			Timeout:    2 * time.Minute,
		},
		Report: ReportSettings{
			Persist: true,
		},
	}
}
