package domain

import "fmt"

// CompileError reports a failed toolchain stage with the tool's output.
type CompileError struct {
	Stage    string
	Tool     string
	ExitCode int
	Output   string
	Err      error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s stage (%s) failed", e.Stage, e.Tool)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets callers match ErrToolchain and the underlying error.
func (e *CompileError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrToolchain}
	}
	return []error{ErrToolchain, e.Err}
}
