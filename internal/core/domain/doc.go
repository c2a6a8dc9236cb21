// Package domain defines the core business entities for lineage.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawRecord: One loosely structured input row with optional fields
//   - ValidatedRecord: A row that passed validation, with defaults applied
//   - Title: The closed set of teacher titles
//   - Bio: Biographical metadata for a teacher
//   - LineageModel: The teacher → address → students structure
//   - IssueLog: Warnings and errors accumulated while ingesting
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
