package domain

// Placeholders used when a bio file omits one of its labelled lines.
const (
	UnknownHometown    = "Unknown hometown"
	UnknownStudentOf   = "Unknown teacher"
	UnknownNationality = "Unknown nationality"
)

// Bio is biographical metadata for a teacher.
type Bio struct {
	Hometown    string
	StudentOf   string
	Nationality string
}

// BioTable maps a formatted teacher name ("Title Last, First Middle") to its bio.
type BioTable map[string]Bio

// Lookup returns the bio for a teacher using an exact key match.
func (t BioTable) Lookup(teacher string) (Bio, bool) {
	b, ok := t[teacher]
	return b, ok
}

// ResolvedBio is the outcome of resolving one teacher's bio.
// When Missing is true, Bio and Article are empty.
type ResolvedBio struct {
	Teacher string
	Bio     Bio

	// Article is "a" or "an", agreeing with Bio.Nationality.
	Article string

	Missing bool
}
