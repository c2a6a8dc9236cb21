package domain

import (
	"fmt"
	"strings"
)

// MaxRecordFields is the number of positional fields in a raw record.
const MaxRecordFields = 6

// SourcePos locates a record in its input file.
type SourcePos struct {
	// File is the path of the file the record was read from.
	File string

	// Line is the 1-based line number within File.
	Line int
}

// String returns "file:line".
func (p SourcePos) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Field is one optional value of a raw record.
// A field is missing when it was never supplied or is blank after trimming.
type Field struct {
	// Value is the text as read, untrimmed.
	Value string

	// Present reports whether the row had a column at this position.
	Present bool
}

// FieldOf returns a present field holding v.
func FieldOf(v string) Field {
	return Field{Value: v, Present: true}
}

// Missing reports whether the field is absent or blank.
func (f Field) Missing() bool {
	return !f.Present || strings.TrimSpace(f.Value) == ""
}

// Trimmed returns the field value with surrounding whitespace removed.
func (f Field) Trimmed() string {
	return strings.TrimSpace(f.Value)
}

// RawRecord is a single input row before validation.
// Layout: teacherName, address?, studentName, date?, ranking, studentNumber?
type RawRecord struct {
	TeacherName Field
	Address     Field
	StudentName Field
	Date        Field
	Ranking     Field
	Number      Field

	// Extra holds any columns past the sixth.
	Extra []string

	// Source is where the record came from.
	Source SourcePos

	// Text is the original line, kept for diagnostics.
	Text string

	// Malformed is set when the line could not be split into columns.
	Malformed string
}

// NewRawRecord builds a RawRecord from positional columns.
// Columns beyond MaxRecordFields are kept in Extra.
func NewRawRecord(cols []string, pos SourcePos) RawRecord {
	rec := RawRecord{Source: pos, Text: strings.Join(cols, ",")}
	fields := []*Field{
		&rec.TeacherName,
		&rec.Address,
		&rec.StudentName,
		&rec.Date,
		&rec.Ranking,
		&rec.Number,
	}
	for i, col := range cols {
		if i < len(fields) {
			*fields[i] = FieldOf(col)
			continue
		}
		rec.Extra = append(rec.Extra, col)
	}
	return rec
}
