package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

func toolchain() domain.ToolchainSettings {
	return domain.ToolchainSettings{Typesetter: "pdflatex", Indexer: "makeindex", Timeout: time.Minute}
}

func TestBuildOrchestrator_RunsThreePasses(t *testing.T) {
	runner := &fakeRunner{produced: true}
	doc := filepath.Join("out", "book.tex")

	result, err := NewBuildOrchestrator(runner, toolchain()).Compile(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "book.pdf"), result.ArtifactPath)
	assert.Equal(t, []string{StageTypeset, StageIndex, StageRetype}, result.Passes)

	require.Len(t, runner.calls, 3)
	assert.Equal(t, "pdflatex", runner.calls[0].name)
	assert.Equal(t, "makeindex", runner.calls[1].name)
	assert.Equal(t, []string{"book.idx"}, runner.calls[1].args)
	assert.Equal(t, "pdflatex", runner.calls[2].name)
	assert.Contains(t, runner.calls[0].args, "book.tex")
	for _, c := range runner.calls {
		assert.Equal(t, "out", c.dir)
	}
}

func TestBuildOrchestrator_StopsAtFailingStage(t *testing.T) {
	runner := &fakeRunner{failAt: 2, failErr: fakeExitError{code: 3}, output: "!! Input index error", produced: true}

	_, err := NewBuildOrchestrator(runner, toolchain()).Compile(context.Background(), "book.tex")

	require.Error(t, err)
	assert.Len(t, runner.calls, 2)
	assert.ErrorIs(t, err, domain.ErrToolchain)

	var compileErr *domain.CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, StageIndex, compileErr.Stage)
	assert.Equal(t, "makeindex", compileErr.Tool)
	assert.Equal(t, 3, compileErr.ExitCode)
	assert.Equal(t, "!! Input index error", compileErr.Output)
}

func TestBuildOrchestrator_FirstPassFailure(t *testing.T) {
	runner := &fakeRunner{failAt: 1, output: "! Undefined control sequence."}

	_, err := NewBuildOrchestrator(runner, toolchain()).Compile(context.Background(), "book.tex")

	var compileErr *domain.CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, StageTypeset, compileErr.Stage)
	assert.Equal(t, 0, compileErr.ExitCode)
	assert.Len(t, runner.calls, 1)
}

func TestBuildOrchestrator_MissingArtifact(t *testing.T) {
	runner := &fakeRunner{produced: false}

	_, err := NewBuildOrchestrator(runner, toolchain()).Compile(context.Background(), "book.tex")

	var compileErr *domain.CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, StageVerify, compileErr.Stage)
	assert.Contains(t, compileErr.Error(), "book.pdf was not produced")
}

func TestBuildOrchestrator_NoRunner(t *testing.T) {
	_, err := NewBuildOrchestrator(nil, toolchain()).Compile(context.Background(), "book.tex")

	assert.ErrorIs(t, err, domain.ErrToolchain)
}

func TestBuildOrchestrator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := &fakeRunner{produced: true}

	_, err := NewBuildOrchestrator(runner, toolchain()).Compile(ctx, "book.tex")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, runner.calls, 1)
}

func TestBuildOrchestrator_MissingTool(t *testing.T) {
	runner := &locatingRunner{fakeRunner: fakeRunner{produced: true}, missing: "makeindex"}

	_, err := NewBuildOrchestrator(runner, toolchain()).Compile(context.Background(), "book.tex")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolchain)
	assert.Empty(t, runner.calls, "no pass runs when a tool is missing")
	assert.Equal(t, []string{"pdflatex", "makeindex"}, runner.looked)

	var compileErr *domain.CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, StageIndex, compileErr.Stage)
	assert.Equal(t, "makeindex", compileErr.Tool)
}

func TestBuildOrchestrator_LocatesToolsOnce(t *testing.T) {
	runner := &locatingRunner{fakeRunner: fakeRunner{produced: true}}

	_, err := NewBuildOrchestrator(runner, toolchain()).Compile(context.Background(), "book.tex")

	require.NoError(t, err)
	assert.Equal(t, []string{"pdflatex", "makeindex"}, runner.looked)
	assert.Len(t, runner.calls, 3)
}
