package domain

import "time"

// RunCommand names the operation that produced a report.
type RunCommand string

// Commands that produce run reports.
const (
	RunCommandCheck    RunCommand = "check"
	RunCommandGenerate RunCommand = "generate"
	RunCommandBuild    RunCommand = "build"
)

// RunReport is the diagnostics record of one pipeline run.
// Only diagnostics are kept; the lineage model itself is never stored.
type RunReport struct {
	// ID is a unique identifier for the run.
	ID string

	Command   RunCommand
	StartedAt time.Time

	// Records is the number of raw records read.
	Records int

	// Accepted is the number of records that passed validation.
	Accepted int

	// Teachers is the number of teachers in the aggregated model.
	Teachers int

	// MissingBios lists teachers rendered without a bio.
	MissingBios []string

	// OutputPath is the written document, if any.
	OutputPath string

	// ArtifactPath is the compiled artifact, if any.
	ArtifactPath string

	Summary IssueSummary
}

// RunReportInfo is a listing row for a stored report.
type RunReportInfo struct {
	ID        string
	Command   RunCommand
	StartedAt time.Time
	Warnings  int
	Errors    int
}
