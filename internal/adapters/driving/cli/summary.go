package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

// printSummary writes the per-file issue counters and, with detail, every issue.
func printSummary(w io.Writer, summary domain.IssueSummary, detail bool) {
	st := NewStyles(w, nil)

	fmt.Fprintln(w, st.Title.Render("Validation summary"))
	if len(summary.Files) == 0 {
		fmt.Fprintln(w, st.Muted.Render("  no input files"))
		return
	}

	nameWidth := len("Total")
	for _, f := range summary.Files {
		if n := len(f.File); n > nameWidth {
			nameWidth = n
		}
	}

	for _, f := range summary.Files {
		fmt.Fprintf(w, "  %-*s  %s\n", nameWidth, f.File, counts(st, f.IssueCounts))
		if detail {
			printIssues(w, st, summary.IssuesFor(f.File))
		}
	}
	fmt.Fprintf(w, "  %-*s  %s\n", nameWidth, "Total", counts(st, summary.Total))
}

func counts(st *Styles, c domain.IssueCounts) string {
	if c.Warnings == 0 && c.Errors == 0 {
		return st.Success.Render("clean")
	}
	parts := make([]string, 0, 2)
	if c.Warnings > 0 {
		parts = append(parts, st.Warning.Render(english.Plural(c.Warnings, "warning", "")))
	}
	if c.Errors > 0 {
		parts = append(parts, st.Error.Render(english.Plural(c.Errors, "error", "")))
	}
	return strings.Join(parts, ", ")
}

func printIssues(w io.Writer, st *Styles, issues []domain.Issue) {
	for _, issue := range issues {
		label := st.Warning.Render(issue.Severity.String())
		if issue.Severity == domain.SeverityError {
			label = st.Error.Render(issue.Severity.String())
		}
		loc := "-"
		if issue.Line > 0 {
			loc = humanize.Comma(int64(issue.Line))
		}
		fmt.Fprintf(w, "      line %s: %s: %s\n", loc, label, issue.Message)
		if issue.Text != "" {
			fmt.Fprintln(w, st.Muted.Render("        > "+truncate(issue.Text, st.Width-10)))
		}
	}
}

// printRunFooter writes the run ID and counters of a report.
func printRunFooter(w io.Writer, report *domain.RunReport) {
	if report == nil {
		return
	}
	st := NewStyles(w, nil)
	fmt.Fprintln(w, st.Muted.Render(fmt.Sprintf("run %s: %s read, %s accepted",
		report.ID,
		english.Plural(report.Records, "record", ""),
		humanize.Comma(int64(report.Accepted)),
	)))
}
