package field

import (
	"strings"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

// FormatStudentName reorders "First Middle Last" into "Last, First Middle".
// Names with fewer than two tokens are returned trimmed but otherwise unchanged.
func FormatStudentName(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return strings.TrimSpace(name)
	}
	last := tokens[len(tokens)-1]
	return last + ", " + strings.Join(tokens[:len(tokens)-1], " ")
}

// FormatTeacherName reorders a titled name into "Title Last, First Middle".
// A name already written as "Last, First" keeps its order, and a title
// followed by a single token becomes "Title Last". Untitled names are
// reordered like student names.
func FormatTeacherName(name string) string {
	title, rest, ok := domain.ParseTitle(name)
	if !ok {
		return FormatStudentName(name)
	}
	switch {
	case len(rest) == 0:
		return title.String()
	case strings.Contains(rest[0], ","):
		return title.String() + " " + strings.Join(rest, " ")
	case len(rest) == 1:
		return title.String() + " " + rest[0]
	default:
		return title.String() + " " + FormatStudentName(strings.Join(rest, " "))
	}
}

// BioKeyFromFilename turns a bio file stem such as "Master_John_A._Smith"
// into the teacher key used for bio lookups.
func BioKeyFromFilename(stem string) string {
	return FormatTeacherName(strings.ReplaceAll(stem, "_", " "))
}
