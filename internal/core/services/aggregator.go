package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/normalisers/field"
)

// Aggregate folds validated records into the lineage model.
//
// Teachers are keyed by their formatted name and, like addresses, keep
// first-seen order. Within each teacher/address bucket students are sorted
// case-insensitively by name, with ties kept in input order, and numbered
// 1..N in that order. Buckets without students never appear.
func Aggregate(records []domain.ValidatedRecord) *domain.LineageModel {
	type bucket struct {
		address  string
		students []domain.StudentEntry
	}
	type teacherAcc struct {
		name      string
		buckets   []*bucket
		byAddress map[string]*bucket
	}

	var order []*teacherAcc
	byTeacher := make(map[string]*teacherAcc)

	for _, rec := range records {
		name := field.FormatTeacherName(rec.TeacherName)
		t, ok := byTeacher[name]
		if !ok {
			t = &teacherAcc{name: name, byAddress: make(map[string]*bucket)}
			byTeacher[name] = t
			order = append(order, t)
		}

		address := strings.TrimSpace(rec.Address)
		if address == "" {
			address = domain.DefaultAddress
		}
		b, ok := t.byAddress[address]
		if !ok {
			b = &bucket{address: address}
			t.byAddress[address] = b
			t.buckets = append(t.buckets, b)
		}

		b.students = append(b.students, domain.StudentEntry{
			Name:    rec.StudentName,
			Date:    rec.DateOrEmpty(),
			Ranking: rec.Ranking,
			Number:  rec.Number,
		})
	}

	teachers := make([]domain.TeacherLineage, 0, len(order))
	for _, t := range order {
		tl := domain.TeacherLineage{Name: t.name}
		for _, b := range t.buckets {
			if len(b.students) == 0 {
				continue
			}
			sortStudents(b.students)
			tl.Addresses = append(tl.Addresses, domain.AddressGroup{
				Address:  b.address,
				Students: b.students,
			})
		}
		if len(tl.Addresses) > 0 {
			teachers = append(teachers, tl)
		}
	}

	return domain.NewLineageModel(teachers)
}

// sortStudents orders entries by case-insensitive name and assigns ordinals.
func sortStudents(students []domain.StudentEntry) {
	sort.SliceStable(students, func(i, j int) bool {
		return strings.ToLower(students[i].Name) < strings.ToLower(students[j].Name)
	})
	for i := range students {
		students[i].Ordinal = i + 1
	}
}
