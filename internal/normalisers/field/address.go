package field

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// abbreviation maps a literal address abbreviation to its expansion.
type abbreviation struct {
	Short string
	Long  string
}

// addressAbbreviations is the fixed expansion table.
var addressAbbreviations = []abbreviation{
	{"St.", "Street"},
	{"St", "Street"},
	{"Ave.", "Avenue"},
	{"Ave", "Avenue"},
	{"Rd.", "Road"},
	{"Rd", "Road"},
	{"Blvd.", "Boulevard"},
	{"Blvd", "Boulevard"},
	{"Dr.", "Drive"},
	{"Dr", "Drive"},
	{"Ln.", "Lane"},
	{"Ln", "Lane"},
	{"Pl.", "Place"},
	{"Pl", "Place"},
	{"Ct.", "Court"},
	{"Ct", "Court"},
	{"Pkwy", "Parkway"},
	{"Hwy", "Highway"},
}

// longestFirst is addressAbbreviations ordered by descending key length,
// ties broken by table order.
var longestFirst = func() []abbreviation {
	out := make([]abbreviation, len(addressAbbreviations))
	copy(out, addressAbbreviations)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Short) > len(out[j].Short)
	})
	return out
}()

// ExpandAddress replaces address abbreviations with their long forms.
//
// The string is scanned once, left to right. At each word start the
// abbreviations are tried longest first; a key only matches when it is not
// followed by a letter, so "St" never matches inside "Street" and the
// function is idempotent. Replaced text is never rescanned.
func ExpandAddress(value string) string {
	if value == "" {
		return value
	}

	var b strings.Builder
	b.Grow(len(value) + 16)

	prevLetter := false
	for i := 0; i < len(value); {
		if !prevLetter {
			if abbr, ok := matchAbbreviation(value[i:]); ok {
				b.WriteString(abbr.Long)
				i += len(abbr.Short)
				prevLetter = endsWithLetter(abbr.Short)
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(value[i:])
		b.WriteRune(r)
		prevLetter = unicode.IsLetter(r)
		i += size
	}
	return b.String()
}

// matchAbbreviation returns the longest key at the start of s that is not
// followed by a letter. A key rejected at this position also rules out
// every shorter key it starts with, so "St.Louis" is left alone.
func matchAbbreviation(s string) (abbreviation, bool) {
	rejected := ""
	for _, abbr := range longestFirst {
		if !strings.HasPrefix(s, abbr.Short) {
			continue
		}
		if rejected != "" && strings.HasPrefix(rejected, abbr.Short) {
			continue
		}
		next, _ := utf8.DecodeRuneInString(s[len(abbr.Short):])
		if next != utf8.RuneError && unicode.IsLetter(next) {
			rejected = abbr.Short
			continue
		}
		return abbr, true
	}
	return abbreviation{}, false
}

func endsWithLetter(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsLetter(r)
}
