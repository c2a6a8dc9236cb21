package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lineage-cli/internal/logger"
	"github.com/custodia-labs/lineage-cli/internal/normalisers/field"
)

// Article returns "an" when nationality starts with a vowel and "a" otherwise.
//
// This is a first-letter heuristic, not a pronunciation rule: nationalities
// such as "Ukrainian" get "an" although "a" would be correct. Known limitation.
func Article(nationality string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(nationality))
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	default:
		return "a"
	}
}

// ResolveBio looks up a teacher's bio by exact formatted name.
func ResolveBio(teacher string, table domain.BioTable) domain.ResolvedBio {
	bio, ok := table.Lookup(teacher)
	if !ok {
		return domain.ResolvedBio{Teacher: teacher, Missing: true}
	}
	return domain.ResolvedBio{
		Teacher: teacher,
		Bio:     bio,
		Article: Article(bio.Nationality),
	}
}

// ResolveBios resolves every teacher in the model and records one warning
// per teacher without a bio. It runs before rendering so the issue log is
// complete by the time the document is written.
func ResolveBios(model *domain.LineageModel, table domain.BioTable, bioSource string, log *domain.IssueLog) map[string]domain.ResolvedBio {
	out := make(map[string]domain.ResolvedBio, model.Len())
	for _, name := range model.TeacherNames() {
		res := ResolveBio(name, table)
		if res.Missing {
			logger.Warn("Missing bio for teacher %q", name)
			log.Warn(domain.SourcePos{File: bioSource}, "", "missing bio for teacher %q", name)
		}
		out[name] = res
	}
	return out
}

// Ensure BioService implements the interface.
var _ driving.BioService = (*BioService)(nil)

// BioService loads bios from several sources and creates new bio files.
type BioService struct {
	sources []driven.BioSource
	writer  driven.BioWriter
}

// NewBioService creates a bio service. Earlier sources win when two
// sources define the same teacher. writer may be nil.
func NewBioService(writer driven.BioWriter, sources ...driven.BioSource) *BioService {
	return &BioService{sources: sources, writer: writer}
}

// Load merges every source into one table, reporting problems to log.
func (s *BioService) Load(ctx context.Context, log *domain.IssueLog) (domain.BioTable, error) {
	table := make(domain.BioTable)
	for _, src := range s.sources {
		loaded, err := src.Load(ctx, log)
		if err != nil {
			return nil, fmt.Errorf("load bios from %s: %w", src.Name(), err)
		}
		for name, bio := range loaded {
			if _, exists := table[name]; exists {
				logger.Debug("Bio for %q from %s shadowed by an earlier source", name, src.Name())
				continue
			}
			table[name] = bio
		}
	}
	logger.Debug("Loaded %d bios", len(table))
	return table, nil
}

// SourceName returns a label for the bio sources used in diagnostics.
func (s *BioService) SourceName() string {
	if len(s.sources) == 0 {
		return "bios"
	}
	return s.sources[0].Name()
}

// List returns every known bio together with load diagnostics.
func (s *BioService) List(ctx context.Context) (domain.BioTable, domain.IssueSummary, error) {
	log := domain.NewIssueLog()
	table, err := s.Load(ctx, log)
	if err != nil {
		return nil, domain.IssueSummary{}, err
	}
	return table, log.Summary(), nil
}

// Create writes a bio for a teacher. The teacher must carry a recognised
// title and every field is title-cased before writing.
func (s *BioService) Create(ctx context.Context, teacher string, bio domain.Bio) (string, error) {
	if s.writer == nil {
		return "", fmt.Errorf("bio writer not configured")
	}
	teacher = strings.Join(strings.Fields(teacher), " ")
	if _, rest, ok := domain.ParseTitle(teacher); !ok || len(rest) == 0 {
		return "", fmt.Errorf("%w: teacher %q must start with one of %v followed by a name",
			domain.ErrInvalidInput, teacher, domain.Titles())
	}

	bio = domain.Bio{
		Hometown:    field.NormalizeCase(strings.TrimSpace(bio.Hometown)),
		StudentOf:   field.NormalizeCase(strings.TrimSpace(bio.StudentOf)),
		Nationality: field.NormalizeCase(strings.TrimSpace(bio.Nationality)),
	}
	if bio.Hometown == "" || bio.StudentOf == "" || bio.Nationality == "" {
		return "", fmt.Errorf("%w: hometown, student of and nationality are all required", domain.ErrInvalidInput)
	}

	path, err := s.writer.Save(ctx, teacher, bio)
	if err != nil {
		return "", fmt.Errorf("save bio: %w", err)
	}
	logger.Info("Bio for %s written to %s", teacher, path)
	return path, nil
}
