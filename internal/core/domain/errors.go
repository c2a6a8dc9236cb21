package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable indicates the raw data source could not be read.
	// This aborts the run; individual bad rows never do.
	ErrSourceUnavailable = errors.New("record source unavailable")

	// ErrNoRecords indicates ingestion produced no usable records.
	ErrNoRecords = errors.New("no valid records")

	// ErrDocumentWrite indicates the rendered document could not be written.
	ErrDocumentWrite = errors.New("document write failed")

	// ErrToolchain indicates the external typesetting toolchain failed.
	ErrToolchain = errors.New("toolchain failed")

	// ErrReportStoreUnavailable indicates run reports are not being persisted.
	ErrReportStoreUnavailable = errors.New("report store unavailable")
)
