// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The lineage pipeline lives here: Validator classifies raw records,
// Aggregate folds them into the lineage model, ResolveBios joins teachers
// to their bios, Pipeline ties rendering and writing together, and
// BuildOrchestrator drives the external typesetting toolchain.
//
// Services are pure Go with no CGO dependencies.
package services
