package domain

import "strings"

// Title is an honorific a teacher name must begin with.
type Title string

// Recognised titles. The set is closed.
const (
	TitleGrandMaster Title = "Grand Master"
	TitleMaster      Title = "Master"
	TitleMr          Title = "Mr."
	TitleMs          Title = "Ms."
	TitleMrs         Title = "Mrs."
)

// Titles returns every recognised title, multi-word titles first.
func Titles() []Title {
	return []Title{TitleGrandMaster, TitleMaster, TitleMr, TitleMs, TitleMrs}
}

// IsValid returns true if the title is recognised.
func (t Title) IsValid() bool {
	switch t {
	case TitleGrandMaster, TitleMaster, TitleMr, TitleMs, TitleMrs:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Title) String() string {
	return string(t)
}

// ParseTitle splits a teacher name into its leading title and the remaining
// name tokens. The match is token based and case-sensitive, so "Masterson Lee"
// has no title. ok is false when the name does not start with a title.
func ParseTitle(name string) (title Title, rest []string, ok bool) {
	tokens := strings.Fields(name)
	for _, t := range Titles() {
		words := strings.Fields(string(t))
		if len(tokens) < len(words) {
			continue
		}
		if strings.Join(tokens[:len(words)], " ") == string(t) {
			return t, tokens[len(words):], true
		}
	}
	return "", tokens, false
}
