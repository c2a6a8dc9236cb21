package latex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/normalisers/field"
)

// Ensure Renderer implements the interface.
var _ driven.DocumentRenderer = (*Renderer)(nil)

// BeginDocument marks the start of the document body.
const BeginDocument = `\begin{document}`

const tableHeader = `\textbf{No.} & \textbf{Student Name} & \textbf{Date} & \textbf{Ranking} & \textbf{Number} \\`

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the clock used for the preamble timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// Renderer emits LaTeX book source.
type Renderer struct {
	boilerplate driven.BoilerplateStore
	now         func() time.Time
}

// New creates a renderer that reads license and introduction text from boilerplate.
func New(boilerplate driven.BoilerplateStore, opts ...Option) *Renderer {
	r := &Renderer{
		boilerplate: boilerplate,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the document source for the given input.
func (r *Renderer) Render(ctx context.Context, in driven.RenderInput) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.boilerplate == nil {
		return nil, errors.New("boilerplate store not configured")
	}

	license, err := r.boilerplate.Get(driven.BoilerplateLicense)
	if err != nil {
		return nil, fmt.Errorf("load license: %w", err)
	}
	intro, err := r.boilerplate.Get(driven.BoilerplateIntroduction)
	if err != nil {
		return nil, fmt.Errorf("load introduction: %w", err)
	}

	var b strings.Builder
	writePreamble(&b, in, r.now())

	b.WriteString(BeginDocument + "\n")
	b.WriteString(`\maketitle` + "\n\n")
	writeBoilerplate(&b, "License", license)
	writeBoilerplate(&b, "Introduction", intro)

	for _, teacher := range orderTeachers(in.Model.Teachers(), in.Settings.Order) {
		writeTeacher(&b, teacher, in.Bios[teacher.Name], in.Settings.MissingBio)
	}

	b.WriteString(`\printindex` + "\n")
	b.WriteString(`\end{document}` + "\n")

	return []byte(b.String()), nil
}

func writePreamble(w io.StringWriter, in driven.RenderInput, now time.Time) {
	_, _ = w.WriteString("% generated " + now.UTC().Format(time.RFC3339) + "\n")
	_, _ = w.WriteString(fmt.Sprintf("%% teachers: %d, students: %d\n", in.Model.Len(), in.Model.StudentCount()))
	_, _ = w.WriteString(fmt.Sprintf("%% issues: %d warnings, %d errors\n",
		in.Summary.Total.Warnings, in.Summary.Total.Errors))
	for _, f := range in.Summary.Files {
		_, _ = w.WriteString(fmt.Sprintf("%%   %s: %d warnings, %d errors\n",
			comment(f.File), f.Warnings, f.Errors))
	}

	_, _ = w.WriteString(`\documentclass{book}` + "\n")
	_, _ = w.WriteString(`\usepackage[utf8]{inputenc}` + "\n")
	_, _ = w.WriteString(`\usepackage{tabularx}` + "\n")
	_, _ = w.WriteString(`\usepackage{makeidx}` + "\n")
	_, _ = w.WriteString(`\makeindex` + "\n")
	_, _ = w.WriteString(`\title{` + field.EscapeSpecialChars(in.Settings.Title) + "}\n")
	_, _ = w.WriteString(`\author{` + field.EscapeSpecialChars(in.Settings.Author) + "}\n")
	_, _ = w.WriteString(`\date{` + now.Format("January 2, 2006") + "}\n\n")
}

// writeBoilerplate emits a fixed section. Boilerplate is trusted markup.
func writeBoilerplate(w io.StringWriter, heading, text string) {
	_, _ = w.WriteString(`\chapter*{` + heading + "}\n")
	if text != "" {
		_, _ = w.WriteString(text + "\n")
	}
	_, _ = w.WriteString("\n")
}

func writeTeacher(w io.StringWriter, t domain.TeacherLineage, bio domain.ResolvedBio, mode domain.MissingBioMode) {
	name := field.EscapeSpecialChars(t.Name)
	_, _ = w.WriteString(`\chapter*{` + name + "}\n")

	switch {
	case !bio.Missing && bio.Article != "":
		_, _ = w.WriteString(fmt.Sprintf("\\paragraph*{} %s, %s %s martial artist, is from %s and was trained under %s.\n\n",
			name,
			bio.Article,
			field.EscapeSpecialChars(bio.Bio.Nationality),
			field.EscapeSpecialChars(bio.Bio.Hometown),
			field.EscapeSpecialChars(bio.Bio.StudentOf),
		))
	case mode != domain.MissingBioOmit:
		_, _ = w.WriteString(fmt.Sprintf("\\paragraph*{} A biography for %s is currently unavailable.\n\n", name))
	}

	for _, group := range t.Addresses {
		writeAddress(w, group)
	}
}

func writeAddress(w io.StringWriter, group domain.AddressGroup) {
	_, _ = w.WriteString(`\section*{` + field.EscapeSpecialChars(group.Address) + "}\n")
	_, _ = w.WriteString(`\begin{tabularx}{\textwidth}{|c|X|X|X|X|}` + "\n")
	_, _ = w.WriteString(`\hline` + "\n")
	_, _ = w.WriteString(tableHeader + "\n")
	_, _ = w.WriteString(`\hline` + "\n")
	for _, s := range group.Students {
		_, _ = w.WriteString(fmt.Sprintf("%d & %s & %s & %s & %s \\\\\n",
			s.Ordinal,
			studentCell(s.Name),
			field.EscapeSpecialChars(s.Date),
			field.EscapeSpecialChars(s.Ranking),
			field.EscapeSpecialChars(s.Number),
		))
		_, _ = w.WriteString(`\hline` + "\n")
	}
	_, _ = w.WriteString(`\end{tabularx}` + "\n\n")
}

// studentCell renders the display name followed by its index directive.
func studentCell(name string) string {
	key := field.EscapeIndexKey(field.FormatStudentName(name))
	return field.EscapeSpecialChars(name) + `\index{` + key + "}"
}

// orderTeachers applies the configured document order. The model order is
// first-seen; alphabetical sorts teachers and their addresses case-insensitively.
func orderTeachers(teachers []domain.TeacherLineage, order domain.DocumentOrder) []domain.TeacherLineage {
	if order != domain.DocumentOrderAlphabetical {
		return teachers
	}
	sort.SliceStable(teachers, func(i, j int) bool {
		return strings.ToLower(teachers[i].Name) < strings.ToLower(teachers[j].Name)
	})
	for _, t := range teachers {
		addrs := t.Addresses
		sort.SliceStable(addrs, func(i, j int) bool {
			return strings.ToLower(addrs[i].Address) < strings.ToLower(addrs[j].Address)
		})
	}
	return teachers
}

// comment flattens a value onto a single comment line.
func comment(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
