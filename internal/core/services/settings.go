package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRawData        = "paths.raw_data"
	keyBios           = "paths.bios"
	keyOutput         = "paths.output"
	keyDataDir        = "paths.data_dir"
	keyDocTitle       = "document.title"
	keyDocAuthor      = "document.author"
	keyDocOrder       = "document.order"
	keyDocMissingBio  = "document.missing_bio"
	keyTitleCase      = "normalise.title_case"
	keyTypesetter     = "toolchain.typesetter"
	keyIndexer        = "toolchain.indexer"
	keyTimeoutSeconds = "toolchain.timeout_seconds"
	keyReportPersist  = "report.persist"
)

// settingKind is the value type of a setting.
type settingKind int

const (
	kindString settingKind = iota
	kindBool
	kindInt
)

// settingKinds lists every supported key and its type.
var settingKinds = map[string]settingKind{
	keyRawData:        kindString,
	keyBios:           kindString,
	keyOutput:         kindString,
	keyDataDir:        kindString,
	keyDocTitle:       kindString,
	keyDocAuthor:      kindString,
	keyDocOrder:       kindString,
	keyDocMissingBio:  kindString,
	keyTitleCase:      kindBool,
	keyTypesetter:     kindString,
	keyIndexer:        kindString,
	keyTimeoutSeconds: kindInt,
	keyReportPersist:  kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	timeout := defaults.Toolchain.Timeout
	if secs := s.configStore.GetInt(keyTimeoutSeconds); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	settings := &domain.AppSettings{
		Paths: domain.PathSettings{
			RawData: s.getString(keyRawData, defaults.Paths.RawData),
			Bios:    s.getString(keyBios, defaults.Paths.Bios),
			Output:  s.getString(keyOutput, defaults.Paths.Output),
			DataDir: s.configStore.GetString(keyDataDir), // Empty means the adapter default
		},
		Document: domain.DocumentSettings{
			Title:      s.getString(keyDocTitle, defaults.Document.Title),
			Author:     s.getString(keyDocAuthor, defaults.Document.Author),
			Order:      s.getOrder(defaults.Document.Order),
			MissingBio: s.getMissingBio(defaults.Document.MissingBio),
		},
		Normalise: domain.NormaliseSettings{
			TitleCase: s.getBool(keyTitleCase, defaults.Normalise.TitleCase),
		},
		Toolchain: domain.ToolchainSettings{
			Typesetter: s.getString(keyTypesetter, defaults.Toolchain.Typesetter),
			Indexer:    s.getString(keyIndexer, defaults.Toolchain.Indexer),
			Timeout:    timeout,
		},
		Report: domain.ReportSettings{
			Persist: s.getBool(keyReportPersist, defaults.Report.Persist),
		},
	}

	return settings, nil
}

// Set validates and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	switch kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false", domain.ErrInvalidInput, key)
		}
		return s.save(key, b)
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s expects a positive integer", domain.ErrInvalidInput, key)
		}
		return s.save(key, n)
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyDocOrder:
		if !domain.DocumentOrder(value).IsValid() {
			return fmt.Errorf("%w: invalid document order: %s", domain.ErrInvalidInput, value)
		}
	case keyDocMissingBio:
		if !domain.MissingBioMode(value).IsValid() {
			return fmt.Errorf("%w: invalid missing bio mode: %s", domain.ErrInvalidInput, value)
		}
	case keyRawData, keyBios, keyOutput, keyTypesetter, keyIndexer:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
	}
	return s.save(key, value)
}

// Keys returns every supported setting key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *SettingsService) save(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetBool(key)
	}
	return defaultVal
}

func (s *SettingsService) getOrder(defaultVal domain.DocumentOrder) domain.DocumentOrder {
	if val := domain.DocumentOrder(s.configStore.GetString(keyDocOrder)); val.IsValid() {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getMissingBio(defaultVal domain.MissingBioMode) domain.MissingBioMode {
	if val := domain.MissingBioMode(s.configStore.GetString(keyDocMissingBio)); val.IsValid() {
		return val
	}
	return defaultVal
}
