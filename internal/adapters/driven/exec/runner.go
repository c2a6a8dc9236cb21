// Package exec runs external toolchain commands through os/exec.
package exec

import (
	"context"
	"os"
	"os/exec"

	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
)

// Verify Runner implements CommandRunner at compile time.
var _ driven.CommandRunner = (*Runner)(nil)

// Runner implements driven.CommandRunner using os/exec.
type Runner struct {
	env []string
}

// NewRunner creates a new Runner. Extra env entries ("KEY=value") are
// appended to the inherited environment of every command.
func NewRunner(env ...string) *Runner {
	return &Runner{env: env}
}

// Run executes a command and returns combined stdout/stderr output.
func (r *Runner) Run(ctx context.Context, workDir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}
	return cmd.CombinedOutput()
}

// Exists checks if a regular file exists at the given path.
func (r *Runner) Exists(_ context.Context, path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// LookPath resolves name to an executable on PATH.
func (r *Runner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
