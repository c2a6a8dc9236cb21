package domain

// Defaults substituted for missing optional fields.
const (
	// DefaultAddress replaces a missing address.
	DefaultAddress = "Unknown Address"

	// DefaultNumber replaces a missing student number.
	DefaultNumber = "0"
)

// ValidatedRecord is a raw record that passed validation.
// TeacherName, StudentName and Ranking are never empty.
type ValidatedRecord struct {
	TeacherName string
	Address     string
	StudentName string

	// Date is nil when the input had no date or a malformed one.
	Date *string

	Ranking string
	Number  string

	// Source is where the record came from.
	Source SourcePos
}

// DateOrEmpty returns the date, or "" when absent.
func (r ValidatedRecord) DateOrEmpty() string {
	if r.Date == nil {
		return ""
	}
	return *r.Date
}
