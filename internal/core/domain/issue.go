package domain

import "fmt"

// Severity classifies an issue.
type Severity string

// Issue severities.
const (
	// SeverityWarning marks an advisory issue; the record is kept.
	SeverityWarning Severity = "warning"

	// SeverityError marks a fatal record issue; the record is dropped.
	SeverityError Severity = "error"
)

// String returns the string representation.
func (s Severity) String() string {
	return string(s)
}

// Issue is one diagnostic raised while ingesting input.
type Issue struct {
	File     string
	Line     int
	Severity Severity
	Message  string

	// Text is the offending input line, if any.
	Text string
}

// String formats the issue as "file:line: severity: message".
func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", i.File, i.Line, i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.File, i.Severity, i.Message)
}

// IssueCounts holds per-file counters.
type IssueCounts struct {
	Warnings int
	Errors   int
}

// IssueLog accumulates issues for one run. It is passed explicitly to
// whatever produces issues and is not safe for concurrent use.
type IssueLog struct {
	files  []string
	counts map[string]*IssueCounts
	issues []Issue
}

// NewIssueLog creates an empty issue log.
func NewIssueLog() *IssueLog {
	return &IssueLog{counts: make(map[string]*IssueCounts)}
}

// Warn records an advisory issue.
func (l *IssueLog) Warn(pos SourcePos, text, format string, args ...any) {
	l.add(Issue{
		File:     pos.File,
		Line:     pos.Line,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Text:     text,
	})
}

// Error records a fatal record issue.
func (l *IssueLog) Error(pos SourcePos, text, format string, args ...any) {
	l.add(Issue{
		File:     pos.File,
		Line:     pos.Line,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Text:     text,
	})
}

// Touch registers a file with zero counts so clean files appear in summaries.
func (l *IssueLog) Touch(file string) {
	l.countsFor(file)
}

func (l *IssueLog) add(issue Issue) {
	c := l.countsFor(issue.File)
	switch issue.Severity {
	case SeverityError:
		c.Errors++
	default:
		c.Warnings++
	}
	l.issues = append(l.issues, issue)
}

func (l *IssueLog) countsFor(file string) *IssueCounts {
	c, ok := l.counts[file]
	if !ok {
		c = &IssueCounts{}
		l.counts[file] = c
		l.files = append(l.files, file)
	}
	return c
}

// Counts returns the counters for a file.
func (l *IssueLog) Counts(file string) IssueCounts {
	if c, ok := l.counts[file]; ok {
		return *c
	}
	return IssueCounts{}
}

// Len returns the number of recorded issues.
func (l *IssueLog) Len() int {
	return len(l.issues)
}

// Summary returns an immutable snapshot of the log.
func (l *IssueLog) Summary() IssueSummary {
	s := IssueSummary{
		Files:  make([]FileIssueSummary, 0, len(l.files)),
		Issues: make([]Issue, len(l.issues)),
	}
	copy(s.Issues, l.issues)
	for _, f := range l.files {
		c := l.counts[f]
		s.Files = append(s.Files, FileIssueSummary{File: f, IssueCounts: *c})
		s.Total.Warnings += c.Warnings
		s.Total.Errors += c.Errors
	}
	return s
}

// FileIssueSummary pairs a file with its counters.
type FileIssueSummary struct {
	File string
	IssueCounts
}

// IssueSummary is a read-only snapshot of an IssueLog.
type IssueSummary struct {
	// Files lists per-file counters in first-seen order.
	Files []FileIssueSummary

	// Total sums every file.
	Total IssueCounts

	// Issues is the detailed list.
	Issues []Issue
}

// Clean reports whether no warnings or errors were recorded.
func (s IssueSummary) Clean() bool {
	return s.Total.Warnings == 0 && s.Total.Errors == 0
}

// IssuesFor returns the detailed issues for one file.
func (s IssueSummary) IssuesFor(file string) []Issue {
	var out []Issue
	for _, i := range s.Issues {
		if i.File == file {
			out = append(out, i)
		}
	}
	return out
}
