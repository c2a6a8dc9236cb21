// Package field implements per-field text normalisation for lineage records.
//
// Escaping is deliberately kept apart from the other transforms: callers
// escape only at the point a value is written into a document, never
// before comparison or sorting.
package field

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeCase title-cases each whitespace separated token.
// Blank input is returned unchanged.
func NormalizeCase(value string) string {
	if strings.TrimSpace(value) == "" {
		return value
	}
	// cases.Caser is stateful, so build one per call.
	return cases.Title(language.English).String(value)
}
