package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func sampleReport(id string, at time.Time) *domain.RunReport {
	return &domain.RunReport{
		ID:          id,
		Command:     domain.RunCommandBuild,
		StartedAt:   at,
		Records:     3,
		Accepted:    2,
		Teachers:    1,
		MissingBios: []string{"Master Lee"},
		OutputPath:  "lineage_document.tex",
		Summary: domain.IssueSummary{
			Files: []domain.FileIssueSummary{
				{File: "a.txt", IssueCounts: domain.IssueCounts{Warnings: 1, Errors: 1}},
				{File: "b.txt"},
			},
			Total: domain.IssueCounts{Warnings: 1, Errors: 1},
			Issues: []domain.Issue{
				{File: "a.txt", Line: 2, Severity: domain.SeverityWarning, Message: "missing number", Text: "Master Lee,x,y,,Black Belt"},
				{File: "a.txt", Line: 3, Severity: domain.SeverityError, Message: "missing teacher name"},
			},
		},
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "reports.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleReport("run-1", time.Now())))
	require.NoError(t, store.Close())

	// Migrations must not re-run against an existing schema.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get(ctx, "run-1")
	assert.NoError(t, err)
}

func TestStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	at := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	report := sampleReport("run-1", at)

	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestStore_Save_Replaces(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	report := sampleReport("run-1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, report))

	report.ArtifactPath = "lineage_document.pdf"
	report.Summary.Issues = report.Summary.Issues[:1]
	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "lineage_document.pdf", got.ArtifactPath)
	assert.Len(t, got.Summary.Issues, 1)
}

func TestStore_Save_Invalid(t *testing.T) {
	store := setupTestStore(t)
	assert.ErrorIs(t, store.Save(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(context.Background(), &domain.RunReport{}), domain.ErrInvalidInput)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Get_NoIssues(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	report := &domain.RunReport{
		ID:        "clean",
		Command:   domain.RunCommandCheck,
		StartedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, "clean")
	require.NoError(t, err)
	assert.Nil(t, got.MissingBios)
	assert.Empty(t, got.Summary.Issues)
	assert.True(t, got.Summary.Clean())
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, sampleReport("first", base)))
	require.NoError(t, store.Save(ctx, sampleReport("third", base.Add(2*time.Hour))))
	require.NoError(t, store.Save(ctx, sampleReport("second", base.Add(time.Hour))))

	infos, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{infos[0].ID, infos[1].ID, infos[2].ID})
	assert.Equal(t, domain.RunCommandBuild, infos[0].Command)
	assert.Equal(t, 1, infos[0].Warnings)
	assert.Equal(t, 1, infos[0].Errors)
	assert.True(t, infos[0].StartedAt.Equal(base.Add(2*time.Hour)))

	infos, err = store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "third", infos[0].ID)
}

func TestStore_List_Empty(t *testing.T) {
	infos, err := setupTestStore(t).List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, infos)
}
