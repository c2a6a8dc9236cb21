package file

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
)

// Ensure BoilerplateStore implements the interface.
var _ driven.BoilerplateStore = (*BoilerplateStore)(nil)

//go:embed defaults/*.tex
var defaultsFS embed.FS

// boilerplateExt is the file extension of boilerplate files.
const boilerplateExt = ".tex"

// BoilerplateStore loads the fixed document sections from user-editable files.
// Each name maps to <dir>/<name>.tex, falling back to the embedded default.
//
// Files are written lazily on first Get, so constructing a store does no I/O.
// Boilerplate text is inserted into the document verbatim and may contain markup.
type BoilerplateStore struct {
	mu       sync.RWMutex
	dir      string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

// NewBoilerplateStore creates a new file-based boilerplate store.
// If dir is empty, defaults to ~/.lineage/boilerplate/.
func NewBoilerplateStore(dir string) (*BoilerplateStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".lineage", "boilerplate")
	}

	return &BoilerplateStore{
		dir:   dir,
		cache: make(map[string]string),
	}, nil
}

// Get returns the text for the given boilerplate name.
// User files take precedence over embedded defaults.
func (s *BoilerplateStore) Get(name string) (string, error) {
	fallback, known := defaultText(name)
	if !known {
		return "", fmt.Errorf("unknown boilerplate %q", name)
	}

	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return fallback, nil
	}

	s.mu.RLock()
	if text, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return text, nil
	}
	s.mu.RUnlock()

	text, err := s.loadFromFile(name)
	if err != nil {
		return fallback, nil
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		text = cached
	} else {
		s.cache[name] = text
	}
	s.mu.Unlock()

	return text, nil
}

// Names returns all boilerplate names in sorted order.
func (s *BoilerplateStore) Names() []string {
	names := []string{driven.BoilerplateIntroduction, driven.BoilerplateLicense}
	sort.Strings(names)
	return names
}

// Reload clears the cache, forcing fresh loads from disk.
func (s *BoilerplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the boilerplate directory path.
func (s *BoilerplateStore) Dir() string {
	return s.dir
}

// initialise creates the directory and writes any missing default files.
func (s *BoilerplateStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create boilerplate directory: %w", err)
		return
	}

	for _, name := range s.Names() {
		path := filepath.Join(s.dir, name+boilerplateExt)
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		text, _ := defaultText(name)
		if err := os.WriteFile(path, []byte(text+"\n"), 0600); err != nil {
			s.initErr = fmt.Errorf("create default boilerplate %q: %w", name, err)
			return
		}
	}
}

func (s *BoilerplateStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+boilerplateExt))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// defaultText returns the embedded text for a known name.
func defaultText(name string) (string, bool) {
	switch name {
	case driven.BoilerplateLicense, driven.BoilerplateIntroduction:
	default:
		return "", false
	}
	data, err := defaultsFS.ReadFile("defaults/" + name + boilerplateExt)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}
