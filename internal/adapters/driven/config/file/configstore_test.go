package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("document.title", "Lineage"))
	require.NoError(t, store.Set("toolchain.timeout_seconds", 90))
	require.NoError(t, store.Set("report.persist", true))

	assert.Equal(t, "Lineage", store.GetString("document.title"))
	assert.Equal(t, 90, store.GetInt("toolchain.timeout_seconds"))
	assert.True(t, store.GetBool("report.persist"))

	// Wrong types and missing keys fall back to zero values.
	assert.Equal(t, "", store.GetString("toolchain.timeout_seconds"))
	assert.Equal(t, 0, store.GetInt("document.title"))
	assert.False(t, store.GetBool("document.title"))
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("paths.raw_data", "input"))
	require.NoError(t, store.Set("paths.bios", "bios"))
	require.NoError(t, store.Set("toolchain.timeout_seconds", 30))
	require.NoError(t, store.Set("normalise.title_case", true))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "input", reopened.GetString("paths.raw_data"))
	assert.Equal(t, "bios", reopened.GetString("paths.bios"))
	assert.Equal(t, 30, reopened.GetInt("toolchain.timeout_seconds"))
	assert.True(t, reopened.GetBool("normalise.title_case"))
	assert.Equal(t, []string{
		"normalise.title_case",
		"paths.bios",
		"paths.raw_data",
		"toolchain.timeout_seconds",
	}, reopened.Keys())
}

func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("paths.output", "book.tex"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[paths]")
	assert.Contains(t, string(data), "output = 'book.tex'")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[document]
title = "Family Tree"
order = "alphabetical"

[toolchain]
timeout_seconds = 45
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "Family Tree", store.GetString("document.title"))
	assert.Equal(t, "alphabetical", store.GetString("document.order"))
	assert.Equal(t, 45, store.GetInt("toolchain.timeout_seconds"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("document.author", "Committee"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Set_WriteErrorRollsBack(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("document.title", "Lineage"))

	// A directory in place of the file makes the write fail.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("document.author", "Committee")
	assert.Error(t, err)
	_, ok := store.Get("document.author")
	assert.False(t, ok)

	err = store.Set("document.title", "Other")
	assert.Error(t, err)
	assert.Equal(t, "Lineage", store.GetString("document.title"))
}

func TestConfigStore_Set_UnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
	_, ok := store.Get("channel")
	assert.False(t, ok)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("valid", "data"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("document.title", "Lineage")
			_ = store.GetString("document.title")
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, "Lineage", store.GetString("document.title"))
}

func TestConfigStore_Set_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("document.title", "Lineage"))
	require.NoError(t, store.Set("document.title", "Lineage II"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ConfigFileName, entries[0].Name())
}
