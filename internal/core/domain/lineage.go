package domain

// StudentEntry is one row of a teacher/address table.
type StudentEntry struct {
	Name    string
	Date    string
	Ranking string
	Number  string

	// Ordinal is the 1-based position within the address table.
	Ordinal int
}

// AddressGroup holds the students trained at one address.
type AddressGroup struct {
	Address  string
	Students []StudentEntry
}

// TeacherLineage holds every address a teacher taught at.
type TeacherLineage struct {
	// Name is the formatted teacher name.
	Name      string
	Addresses []AddressGroup
}

// StudentCount returns the number of students across all addresses.
func (t TeacherLineage) StudentCount() int {
	n := 0
	for _, a := range t.Addresses {
		n += len(a.Students)
	}
	return n
}

// LineageModel is the aggregated teacher → address → students structure.
// Teachers and addresses keep first-seen order. It is immutable once built;
// accessors return copies.
type LineageModel struct {
	teachers []TeacherLineage
	index    map[string]int
}

// NewLineageModel builds a model from already ordered teachers.
func NewLineageModel(teachers []TeacherLineage) *LineageModel {
	m := &LineageModel{
		teachers: cloneTeachers(teachers),
		index:    make(map[string]int, len(teachers)),
	}
	for i, t := range m.teachers {
		m.index[t.Name] = i
	}
	return m
}

// Teachers returns the teachers in model order.
func (m *LineageModel) Teachers() []TeacherLineage {
	if m == nil {
		return nil
	}
	return cloneTeachers(m.teachers)
}

// Teacher returns one teacher by formatted name.
func (m *LineageModel) Teacher(name string) (TeacherLineage, bool) {
	if m == nil {
		return TeacherLineage{}, false
	}
	i, ok := m.index[name]
	if !ok {
		return TeacherLineage{}, false
	}
	return cloneTeachers(m.teachers[i : i+1])[0], true
}

// TeacherNames returns formatted teacher names in model order.
func (m *LineageModel) TeacherNames() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.teachers))
	for i, t := range m.teachers {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of teachers.
func (m *LineageModel) Len() int {
	if m == nil {
		return 0
	}
	return len(m.teachers)
}

// StudentCount returns the number of students in the model.
func (m *LineageModel) StudentCount() int {
	n := 0
	if m == nil {
		return n
	}
	for _, t := range m.teachers {
		n += t.StudentCount()
	}
	return n
}

func cloneTeachers(src []TeacherLineage) []TeacherLineage {
	out := make([]TeacherLineage, len(src))
	for i, t := range src {
		out[i] = TeacherLineage{Name: t.Name, Addresses: make([]AddressGroup, len(t.Addresses))}
		for j, a := range t.Addresses {
			students := make([]StudentEntry, len(a.Students))
			copy(students, a.Students)
			out[i].Addresses[j] = AddressGroup{Address: a.Address, Students: students}
		}
	}
	return out
}
