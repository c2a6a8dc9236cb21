package driven

import "context"

// CommandRunner runs external commands.
// This abstraction allows mocking the typesetting toolchain in tests.
type CommandRunner interface {
	// Run executes a command and returns combined stdout/stderr output.
	// The working directory is set to workDir if non-empty. A command that
	// exits non-zero returns its output together with an error.
	Run(ctx context.Context, workDir string, name string, args ...string) ([]byte, error)

	// Exists checks if a file exists at the given path.
	Exists(ctx context.Context, path string) bool
}
