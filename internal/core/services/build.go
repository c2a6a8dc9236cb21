package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/logger"
)

// Build stage names, in execution order.
const (
	StageTypeset = "typeset"
	StageIndex   = "index"
	StageRetype  = "retypeset"
	StageVerify  = "verify"
)

// CompileResult describes a successful compile.
type CompileResult struct {
	ArtifactPath string
	Passes       []string
	Elapsed      time.Duration
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// toolLocator is implemented by runners that can resolve a tool before
// running it.
type toolLocator interface {
	LookPath(name string) (string, error)
}

// stage is one toolchain invocation.
type stage struct {
	name string
	tool string
	args []string
}

// BuildOrchestrator drives the typesetting toolchain: typeset, build the
// index, typeset again. The first pass records index entries, the second
// renders the resolved index. Any failing stage stops the build; there are
// no retries.
type BuildOrchestrator struct {
	runner     driven.CommandRunner
	typesetter string
	indexer    string
	timeout    time.Duration
}

// NewBuildOrchestrator creates a build orchestrator from toolchain settings.
func NewBuildOrchestrator(runner driven.CommandRunner, cfg domain.ToolchainSettings) *BuildOrchestrator {
	return &BuildOrchestrator{
		runner:     runner,
		typesetter: cfg.Typesetter,
		indexer:    cfg.Indexer,
		timeout:    cfg.Timeout,
	}
}

// Compile builds the artifact for documentPath. Output files are written
// next to the document.
func (b *BuildOrchestrator) Compile(ctx context.Context, documentPath string) (*CompileResult, error) {
	if b.runner == nil {
		return nil, fmt.Errorf("%w: command runner not configured", domain.ErrToolchain)
	}

	dir := filepath.Dir(documentPath)
	base := strings.TrimSuffix(filepath.Base(documentPath), filepath.Ext(documentPath))
	typesetArgs := []string{"-interaction=nonstopmode", "-halt-on-error", filepath.Base(documentPath)}

	stages := []stage{
		{name: StageTypeset, tool: b.typesetter, args: typesetArgs},
		{name: StageIndex, tool: b.indexer, args: []string{base + ".idx"}},
		{name: StageRetype, tool: b.typesetter, args: typesetArgs},
	}

	if err := b.locateTools(stages); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &CompileResult{}
	for _, st := range stages {
		if err := b.runStage(ctx, dir, st); err != nil {
			return nil, err
		}
		result.Passes = append(result.Passes, st.name)
	}

	artifact := filepath.Join(dir, base+".pdf")
	if !b.runner.Exists(ctx, artifact) {
		return nil, &domain.CompileError{
			Stage: StageVerify,
			Tool:  b.typesetter,
			Err:   fmt.Errorf("artifact %s was not produced", artifact),
		}
	}

	result.ArtifactPath = artifact
	result.Elapsed = time.Since(start)
	logger.Info("Build complete: %s (%s)", artifact, result.Elapsed.Round(time.Millisecond))
	return result, nil
}

// locateTools fails fast when a stage's tool is not installed, before any
// pass has touched the output directory.
func (b *BuildOrchestrator) locateTools(stages []stage) error {
	locator, ok := b.runner.(toolLocator)
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(stages))
	for _, st := range stages {
		if seen[st.tool] {
			continue
		}
		seen[st.tool] = true
		if _, err := locator.LookPath(st.tool); err != nil {
			return &domain.CompileError{
				Stage: st.name,
				Tool:  st.tool,
				Err:   fmt.Errorf("%s not found: %w", st.tool, err),
			}
		}
		logger.Debug("Found %s", st.tool)
	}
	return nil
}

func (b *BuildOrchestrator) runStage(ctx context.Context, dir string, st stage) error {
	logger.Debug("Running %s stage: %s %s", st.name, st.tool, strings.Join(st.args, " "))

	stageCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	out, err := b.runner.Run(stageCtx, dir, st.tool, st.args...)
	if err == nil {
		return nil
	}

	cerr := &domain.CompileError{
		Stage:  st.name,
		Tool:   st.tool,
		Output: string(out),
		Err:    err,
	}
	var exitErr exitCoder
	if errors.As(err, &exitErr) {
		cerr.ExitCode = exitErr.ExitCode()
	}
	if stageCtx.Err() != nil {
		cerr.Err = fmt.Errorf("%w: %w", err, stageCtx.Err())
	}
	logger.Warn("%s", cerr.Error())
	return cerr
}
