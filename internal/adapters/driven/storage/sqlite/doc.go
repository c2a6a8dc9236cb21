// Package sqlite provides a SQLite-backed implementation of driven.ReportStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Only run diagnostics are stored: the per-file issue counters, the issue
// list and the run metadata. The lineage model is rebuilt on every run and never
// persisted.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/ directory.
// Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.lineage/data/reports.db
package sqlite
