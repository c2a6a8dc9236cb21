package filesystem

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
)

// Ensure Connector implements the interfaces.
var (
	_ driven.RecordSource = (*Connector)(nil)
	_ driven.RawFileStore = (*Connector)(nil)
	_ driven.Watcher      = (*Connector)(nil)
)

// Connector reads raw record files from a root directory.
type Connector struct {
	rootPath string

	mu       sync.Mutex
	closed   bool
	watchers []io.Closer
}

// New creates a filesystem connector rooted at rootPath.
func New(rootPath string) *Connector {
	return &Connector{rootPath: rootPath}
}

// Root returns the raw data directory.
func (c *Connector) Root() string {
	return c.rootPath
}

// Files lists the input files in name order. Hidden files and
// subdirectories are skipped.
func (c *Connector) Files(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(c.rootPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}

	var files []string
	for _, entry := range entries {
		if isHidden(entry.Name()) || !entry.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(c.rootPath, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// ReadFile parses every non-blank, non-comment line of path. Each line
// is split on its own, so a bad line never consumes its neighbours and
// is returned as a single malformed record.
func (c *Connector) ReadFile(ctx context.Context, path string) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	var records []domain.RawRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		text := strings.TrimSpace(line)
		if text == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pos := domain.SourcePos{File: path, Line: n}
		cols, err := splitLine(line)
		if err != nil {
			rec := domain.NewRawRecord(nil, pos)
			rec.Text = text
			rec.Malformed = err.Error()
			records = append(records, rec)
			continue
		}
		if blank(cols) {
			continue
		}

		rec := domain.NewRawRecord(cols, pos)
		rec.Text = text
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// splitLine splits one line into columns. A quoted field that is never
// closed is reported as csv.ErrQuote.
func splitLine(line string) ([]string, error) {
	if unterminatedQuote(line) {
		return nil, csv.ErrQuote
	}
	cols, err := newReader(strings.NewReader(line)).Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, perr.Err
		}
		return nil, err
	}
	return cols, nil
}

// unterminatedQuote reports whether a field of line opens a quote that
// the line never closes. Quotes inside unquoted fields are literal.
func unterminatedQuote(line string) bool {
	quoted, fieldStart := false, true
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case quoted:
			if ch == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					i++
					continue
				}
				quoted = false
			}
		case ch == ',':
			fieldStart = true
		case fieldStart && (ch == ' ' || ch == '\t'):
		case fieldStart && ch == '"':
			quoted, fieldStart = true, false
		default:
			fieldStart = false
		}
	}
	return quoted
}

// newReader configures a CSV reader for a lineage line: variable column
// counts and lenient quoting.
func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return cr
}

// blank reports whether a parsed line holds nothing but whitespace.
func blank(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Lines returns the trimmed, non-blank lines of path.
func (c *Connector) Lines(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// Create writes lines to a new file in the root directory. An existing
// file is never overwritten.
func (c *Connector) Create(ctx context.Context, name string, lines []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || isHidden(name) {
		return "", fmt.Errorf("%w: invalid file name %q", domain.ErrInvalidInput, name)
	}

	path := filepath.Join(c.rootPath, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		_, _ = w.WriteString(line)
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes an input file. Only files directly inside the root
// directory can be removed.
func (c *Connector) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(c.rootPath) {
		return fmt.Errorf("%w: %s is outside %s", domain.ErrInvalidInput, path, c.rootPath)
	}
	return os.Remove(path)
}

// Close stops every active watcher. Close is idempotent.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for _, w := range c.watchers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.watchers = nil
	return errors.Join(errs...)
}

// isHidden reports whether a file name starts with a dot.
// "." and ".." are not considered hidden.
func isHidden(name string) bool {
	base := filepath.Base(name)
	if base == "." || base == ".." {
		return false
	}
	return strings.HasPrefix(base, ".")
}
