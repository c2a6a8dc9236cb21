package textfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

func writeBio(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSource_Load(t *testing.T) {
	dir := t.TempDir()
	writeBio(t, dir, "Grand_Master_John_A._Smith.txt",
		"Hometown: Seoul\nStudent of: Grand Master Kim\nNationality: Korean\n")
	writeBio(t, dir, "Master_Lee.txt",
		"  Nationality:  American \nHometown: Boston\nStudent of: Master Park\nextra line\n")
	writeBio(t, dir, "notes.md", "Hometown: ignored")
	writeBio(t, dir, ".hidden.txt", "Hometown: ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	log := domain.NewIssueLog()
	table, err := New(dir).Load(context.Background(), log)
	require.NoError(t, err)

	assert.Equal(t, domain.BioTable{
		"Grand Master Smith, John A.": {Hometown: "Seoul", StudentOf: "Grand Master Kim", Nationality: "Korean"},
		"Master Lee":                  {Hometown: "Boston", StudentOf: "Master Park", Nationality: "American"},
	}, table)
	assert.Zero(t, log.Len())
}

func TestSource_Load_MissingLabels(t *testing.T) {
	dir := t.TempDir()
	path := writeBio(t, dir, "Ms._Jane_Doe.txt", "Hometown: Lyon\n")

	log := domain.NewIssueLog()
	table, err := New(dir).Load(context.Background(), log)
	require.NoError(t, err)

	assert.Equal(t, domain.Bio{
		Hometown:    "Lyon",
		StudentOf:   domain.UnknownStudentOf,
		Nationality: domain.UnknownNationality,
	}, table["Ms. Doe, Jane"])
	assert.Equal(t, domain.IssueCounts{Warnings: 2}, log.Counts(path))
}

func TestSource_Load_MissingDirectory(t *testing.T) {
	log := domain.NewIssueLog()
	table, err := New(filepath.Join(t.TempDir(), "nope")).Load(context.Background(), log)

	require.NoError(t, err)
	assert.Empty(t, table)
	assert.Zero(t, log.Len())
}

func TestSource_Load_NotADirectory(t *testing.T) {
	file := writeBio(t, t.TempDir(), "file", "")

	_, err := New(file).Load(context.Background(), domain.NewIssueLog())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestSource_Load_DuplicateKey(t *testing.T) {
	dir := t.TempDir()
	writeBio(t, dir, "Master_Jane_Lee.txt", "Hometown: A\nStudent of: B\nNationality: C\n")
	dup := writeBio(t, dir, "Master_Lee,_Jane.txt", "Hometown: X\nStudent of: Y\nNationality: Z\n")

	log := domain.NewIssueLog()
	table, err := New(dir).Load(context.Background(), log)
	require.NoError(t, err)

	assert.Len(t, table, 1)
	assert.Equal(t, "A", table["Master Lee, Jane"].Hometown)
	assert.Equal(t, 1, log.Counts(dup).Warnings)
}

func TestSource_SaveThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Bios")
	src := New(dir)
	bio := domain.Bio{Hometown: "Seoul", StudentOf: "Grand Master Kim", Nationality: "Korean"}

	path, err := src.Save(context.Background(), "Grand Master  John A. Smith", bio)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Grand_Master_John_A._Smith.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hometown: Seoul\nStudent of: Grand Master Kim\nNationality: Korean\n", string(data))

	table, err := src.Load(context.Background(), domain.NewIssueLog())
	require.NoError(t, err)
	assert.Equal(t, bio, table["Grand Master Smith, John A."])
}

func TestFileName(t *testing.T) {
	tests := []struct {
		teacher string
		want    string
		wantErr bool
	}{
		{teacher: "Master Jane Lee", want: "Master_Jane_Lee.txt"},
		{teacher: "  Mr.   Bob  ", want: "Mr._Bob.txt"},
		{teacher: "   ", wantErr: true},
		{teacher: "Master a/b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.teacher, func(t *testing.T) {
			got, err := FileName(tt.teacher)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
