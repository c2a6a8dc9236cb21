// Package textfile reads and writes teacher bios stored as one text file per teacher.
//
// A bio file is named after the teacher with spaces replaced by underscores,
// e.g. "Grand_Master_John_A._Smith.txt", and contains three labelled lines:
//
//	Hometown: Seoul
//	Student of: Grand Master Kim
//	Nationality: Korean
package textfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/logger"
	"github.com/custodia-labs/lineage-cli/internal/normalisers/field"
)

// Ensure Source implements the interfaces.
var (
	_ driven.BioSource = (*Source)(nil)
	_ driven.BioWriter = (*Source)(nil)
)

// Ext is the bio file extension.
const Ext = ".txt"

// Labels of the lines in a bio file.
const (
	LabelHometown    = "Hometown:"
	LabelStudentOf   = "Student of:"
	LabelNationality = "Nationality:"
)

// Source is a directory of bio text files.
type Source struct {
	dir string
}

// New creates a bio source over dir. The directory need not exist yet.
func New(dir string) *Source {
	return &Source{dir: dir}
}

// Name returns the bio directory.
func (s *Source) Name() string {
	return s.dir
}

// Load reads every bio file in the directory. Files missing a labelled line
// are loaded with placeholders and reported to log.
func (s *Source) Load(ctx context.Context, log *domain.IssueLog) (domain.BioTable, error) {
	table := make(domain.BioTable)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Bios directory not found: %s", s.dir)
			return table, nil
		}
		return nil, fmt.Errorf("%w: read bios directory: %w", domain.ErrSourceUnavailable, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != Ext {
			continue
		}

		path := filepath.Join(s.dir, name)
		key := field.BioKeyFromFilename(strings.TrimSuffix(name, Ext))
		pos := domain.SourcePos{File: path}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn(pos, "", "unreadable bio file: %v", err)
			continue
		}
		if _, dup := table[key]; dup {
			log.Warn(pos, "", "duplicate bio for %q ignored", key)
			continue
		}
		table[key] = parse(data, pos, log)
	}

	return table, nil
}

// parse reads the labelled lines of one bio file.
func parse(data []byte, pos domain.SourcePos, log *domain.IssueLog) domain.Bio {
	values := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		for _, label := range []string{LabelHometown, LabelStudentOf, LabelNationality} {
			if rest, ok := strings.CutPrefix(line, label); ok {
				if _, seen := values[label]; !seen {
					values[label] = strings.TrimSpace(rest)
				}
				break
			}
		}
	}

	get := func(label, placeholder string) string {
		if v := values[label]; v != "" {
			return v
		}
		log.Warn(pos, "", "missing %q line, using %q", strings.TrimSuffix(label, ":"), placeholder)
		return placeholder
	}

	return domain.Bio{
		Hometown:    get(LabelHometown, domain.UnknownHometown),
		StudentOf:   get(LabelStudentOf, domain.UnknownStudentOf),
		Nationality: get(LabelNationality, domain.UnknownNationality),
	}
}

// Save writes a bio file for teacher, replacing any existing file.
func (s *Source) Save(ctx context.Context, teacher string, bio domain.Bio) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := FileName(teacher)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create bios directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", LabelHometown, bio.Hometown)
	fmt.Fprintf(&b, "%s %s\n", LabelStudentOf, bio.StudentOf)
	fmt.Fprintf(&b, "%s %s\n", LabelNationality, bio.Nationality)

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write bio file: %w", err)
	}
	return path, nil
}

// FileName returns the bio file name for a teacher name.
func FileName(teacher string) (string, error) {
	tokens := strings.Fields(teacher)
	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: empty teacher name", domain.ErrInvalidInput)
	}
	stem := strings.Join(tokens, "_")
	if strings.ContainsAny(stem, `/\`) || stem == "." || stem == ".." {
		return "", fmt.Errorf("%w: teacher name %q is not a valid file name", domain.ErrInvalidInput, teacher)
	}
	return stem + Ext, nil
}
