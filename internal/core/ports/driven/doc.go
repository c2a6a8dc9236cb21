// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RecordSource: Yields raw records from the input directory
//   - BioSource: Loads teacher bios
//   - DocumentRenderer: Turns the lineage model into document source
//   - DocumentWriter: Stores the rendered document
//   - BoilerplateStore: License and introduction text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CommandRunner: Runs the typesetting toolchain. Without it, build is disabled.
//   - ReportStore: Persists run diagnostics. Without it, reports are not kept.
//   - Watcher: Change notifications. Without it, watch mode is disabled.
//   - RawFileStore: Line access for merging raw files.
//   - BioWriter: Creates bio files.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
