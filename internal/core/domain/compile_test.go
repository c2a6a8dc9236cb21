package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileError_Error(t *testing.T) {
	err := &CompileError{Stage: "index", Tool: "makeindex", ExitCode: 2, Err: errors.New("exit status 2")}
	assert.Equal(t, "index stage (makeindex) failed with exit code 2: exit status 2", err.Error())

	bare := &CompileError{Stage: "verify", Tool: "pdflatex"}
	assert.Equal(t, "verify stage (pdflatex) failed", bare.Error())
}

func TestCompileError_Unwrap(t *testing.T) {
	err := &CompileError{Stage: "typeset", Tool: "pdflatex", Err: context.DeadlineExceeded}

	assert.ErrorIs(t, err, ErrToolchain)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, &CompileError{}, ErrToolchain)
}
