package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/normalisers/field"
)

// datePattern is the accepted date layout: four digits, two digits, two digits.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validator classifies raw records as accepted, accepted with warnings, or rejected.
type Validator struct {
	titleCase bool
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithTitleCase title-cases student names and rankings of accepted records.
func WithTitleCase(enabled bool) ValidatorOption {
	return func(v *Validator) {
		v.titleCase = enabled
	}
}

// NewValidator creates a new record validator.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks one raw record. Issues are added to log.
// A rejected record adds exactly one error and returns ok == false.
// An accepted record adds one warning per missing or malformed optional field.
func (v *Validator) Validate(raw domain.RawRecord, log *domain.IssueLog) (domain.ValidatedRecord, bool) {
	if raw.Malformed != "" {
		log.Error(raw.Source, raw.Text, "malformed line: %s", raw.Malformed)
		return domain.ValidatedRecord{}, false
	}

	teacher := raw.TeacherName.Trimmed()
	student := raw.StudentName.Trimmed()
	ranking := raw.Ranking.Trimmed()

	var problems []string
	switch {
	case raw.TeacherName.Missing():
		problems = append(problems, "missing teacher name (with title)")
	default:
		title, rest, ok := domain.ParseTitle(teacher)
		switch {
		case !ok:
			problems = append(problems, "teacher name does not start with a recognised title")
		case len(rest) == 0:
			problems = append(problems, "teacher name has no name after title "+title.String())
		}
	}
	if raw.StudentName.Missing() {
		problems = append(problems, "missing student name")
	}
	if raw.Ranking.Missing() {
		problems = append(problems, "missing student rank")
	}
	if len(problems) > 0 {
		log.Error(raw.Source, raw.Text, "%s", strings.Join(problems, "; "))
		return domain.ValidatedRecord{}, false
	}

	rec := domain.ValidatedRecord{
		TeacherName: teacher,
		StudentName: student,
		Ranking:     ranking,
		Address:     domain.DefaultAddress,
		Number:      domain.DefaultNumber,
		Source:      raw.Source,
	}

	if raw.Address.Missing() {
		log.Warn(raw.Source, raw.Text, "missing teacher address, using %q", domain.DefaultAddress)
	} else {
		rec.Address = field.ExpandAddress(raw.Address.Trimmed())
	}

	switch {
	case raw.Date.Missing():
		log.Warn(raw.Source, raw.Text, "missing date")
	case !datePattern.MatchString(raw.Date.Trimmed()):
		log.Warn(raw.Source, raw.Text, "malformed date %q, expected YYYY-MM-DD", raw.Date.Trimmed())
	default:
		date := raw.Date.Trimmed()
		rec.Date = &date
	}

	if raw.Number.Missing() {
		log.Warn(raw.Source, raw.Text, "missing student number, using %q", domain.DefaultNumber)
	} else {
		rec.Number = raw.Number.Trimmed()
	}

	if len(raw.Extra) > 0 {
		log.Warn(raw.Source, raw.Text, "%d unexpected extra field(s) ignored", len(raw.Extra))
	}

	if v.titleCase {
		rec.StudentName = field.NormalizeCase(rec.StudentName)
		rec.Ranking = field.NormalizeCase(rec.Ranking)
	}

	return rec, true
}

// ValidateAll validates records in order and returns the accepted ones.
func (v *Validator) ValidateAll(raws []domain.RawRecord, log *domain.IssueLog) []domain.ValidatedRecord {
	out := make([]domain.ValidatedRecord, 0, len(raws))
	for _, raw := range raws {
		if rec, ok := v.Validate(raw, log); ok {
			out = append(out, rec)
		}
	}
	return out
}
