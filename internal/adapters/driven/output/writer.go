// Package output writes rendered documents to the local filesystem.
package output

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.DocumentWriter = (*Writer)(nil)

const (
	defaultFilePerm = 0o644
	defaultDirPerm  = 0o755
	bufSize         = 64 * 1024
)

// Writer replaces documents atomically: content goes to a temporary file in
// the destination directory which is then renamed over the target. A failed
// write leaves any previous document untouched.
type Writer struct {
	filePerm os.FileMode
	dirPerm  os.FileMode
}

// NewWriter creates a document writer with default permissions.
func NewWriter() *Writer {
	return &Writer{filePerm: defaultFilePerm, dirPerm: defaultDirPerm}
}

// Write replaces the document at path with content.
func (w *Writer) Write(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("empty output path")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, w.dirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, w.filePerm)

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	bw := bufio.NewWriterSize(tmp, bufSize)
	if _, err := io.Copy(bw, &ctxReader{ctx: ctx, r: bytes.NewReader(content)}); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// ctxReader checks ctx before every Read.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
