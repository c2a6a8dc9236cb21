// Package yamlfile reads teacher bios from a single YAML bundle.
//
// The bundle maps teacher names to their bio fields:
//
//	Master Jane Lee:
//	  hometown: Boston
//	  student_of: Grand Master Kim
//	  nationality: American
//
// Names are keyed by their formatted form, so "Master Jane Lee" and
// "Master Lee, Jane" refer to the same teacher.
package yamlfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/normalisers/field"
)

// Ensure Source implements the interface.
var _ driven.BioSource = (*Source)(nil)

// FileName is the conventional bundle name inside the bios directory.
const FileName = "bios.yaml"

// entry is one teacher in the bundle.
type entry struct {
	Hometown    string `yaml:"hometown"`
	StudentOf   string `yaml:"student_of"`
	Nationality string `yaml:"nationality"`
}

// Source is a YAML bio bundle.
type Source struct {
	path string
}

// New creates a bundle source for path. The file is optional.
func New(path string) *Source {
	return &Source{path: path}
}

// Name returns the bundle path.
func (s *Source) Name() string {
	return s.path
}

// Load parses the bundle. A malformed bundle is reported to log and yields
// no bios; a malformed entry is loaded with placeholders.
func (s *Source) Load(ctx context.Context, log *domain.IssueLog) (domain.BioTable, error) {
	table := make(domain.BioTable)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return table, nil
		}
		return nil, fmt.Errorf("%w: read bios bundle: %w", domain.ErrSourceUnavailable, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		log.Warn(domain.SourcePos{File: s.path}, "", "invalid bios bundle: %v", err)
		return table, nil
	}
	if len(root.Content) == 0 {
		return table, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		log.Warn(domain.SourcePos{File: s.path, Line: doc.Line}, "", "bios bundle must map teacher names to bios")
		return table, nil
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, valueNode := doc.Content[i], doc.Content[i+1]
		pos := domain.SourcePos{File: s.path, Line: keyNode.Line}
		name := strings.Join(strings.Fields(keyNode.Value), " ")
		if name == "" {
			log.Warn(pos, "", "bio entry without a teacher name ignored")
			continue
		}
		key := field.FormatTeacherName(name)
		if _, dup := table[key]; dup {
			log.Warn(pos, "", "duplicate bio for %q ignored", key)
			continue
		}

		var e entry
		if err := valueNode.Decode(&e); err != nil {
			log.Warn(pos, "", "invalid bio for %q: %v", name, err)
			continue
		}
		table[key] = e.bio(pos, log)
	}

	return table, nil
}

func (e entry) bio(pos domain.SourcePos, log *domain.IssueLog) domain.Bio {
	get := func(name, value, placeholder string) string {
		if v := strings.TrimSpace(value); v != "" {
			return v
		}
		log.Warn(pos, "", "missing %q, using %q", name, placeholder)
		return placeholder
	}
	return domain.Bio{
		Hometown:    get("hometown", e.Hometown, domain.UnknownHometown),
		StudentOf:   get("student_of", e.StudentOf, domain.UnknownStudentOf),
		Nationality: get("nationality", e.Nationality, domain.UnknownNationality),
	}
}
