package field

import "strings"

// specialChars maps each typesetting-reserved character to its escaped form.
var specialChars = map[rune]string{
	'\\': `\textbackslash{}`,
	'&':  `\&`,
	'%':  `\%`,
	'$':  `\$`,
	'#':  `\#`,
	'_':  `\_`,
	'{':  `\{`,
	'}':  `\}`,
	'~':  `\textasciitilde{}`,
	'^':  `\textasciicircum{}`,
}

// indexSpecialChars are the characters makeindex treats as operators.
const indexSpecialChars = `!@|"`

// EscapeSpecialChars escapes every typesetting-reserved character.
// The input is scanned once, so replacement text is never escaped again.
func EscapeSpecialChars(value string) string {
	if !strings.ContainsAny(value, `\&%$#_{}~^`) {
		return value
	}
	var b strings.Builder
	b.Grow(len(value) + 8)
	for _, r := range value {
		if esc, ok := specialChars[r]; ok {
			b.WriteString(esc)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeIndexKey escapes a value for use inside an \index{} directive.
// makeindex operators are quoted with '"' before the usual escaping.
func EscapeIndexKey(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 4)
	for _, r := range value {
		if strings.ContainsRune(indexSpecialChars, r) {
			b.WriteByte('"')
		}
		b.WriteRune(r)
	}
	return EscapeSpecialChars(b.String())
}
