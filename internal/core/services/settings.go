package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
	"github.com/custodia-labs/jsonstore/internal/core/ports/driven"
	"github.com/custodia-labs/jsonstore/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDataDir   = "store.dir"
	KeyExtension = "store.extension"
	KeyIndent    = "store.indent"
	KeyFileMode  = "store.file_mode"
)

// SettingsService manages store settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current store settings, falling back to defaults for
// unset or invalid values.
func (s *SettingsService) Get() (*domain.StoreSettings, error) {
	defaults := domain.DefaultStoreSettings()

	settings := &domain.StoreSettings{
		DataDir:   s.getString(KeyDataDir, defaults.DataDir),
		Extension: s.getExtension(defaults.Extension),
		Indent:    s.getBool(KeyIndent, defaults.Indent),
		FileMode:  s.getFileMode(defaults.FileMode),
	}

	return settings, nil
}

// Save persists store settings.
func (s *SettingsService) Save(settings *domain.StoreSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if err := s.configStore.Set(KeyDataDir, settings.DataDir); err != nil {
		return fmt.Errorf("save data dir: %w", err)
	}
	if err := s.configStore.Set(KeyExtension, domain.NormaliseExtension(settings.Extension)); err != nil {
		return fmt.Errorf("save extension: %w", err)
	}
	if err := s.configStore.Set(KeyIndent, settings.Indent); err != nil {
		return fmt.Errorf("save indent: %w", err)
	}
	if err := s.configStore.Set(KeyFileMode, int(settings.FileMode.Perm())); err != nil {
		return fmt.Errorf("save file mode: %w", err)
	}

	return nil
}

// SetDataDir updates the directory holding the JSON files.
func (s *SettingsService) SetDataDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: data dir is required", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.DataDir = dir
	return s.Save(settings)
}

// SetExtension updates the file extension appended to logical names.
// An empty extension stores names as given.
func (s *SettingsService) SetExtension(ext string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Extension = domain.NormaliseExtension(ext)
	return s.Save(settings)
}

// SetIndent toggles pretty-printed output.
func (s *SettingsService) SetIndent(indent bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Indent = indent
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.StoreSettings {
	return domain.DefaultStoreSettings()
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getBool(key string, fallback bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getExtension(fallback string) string {
	val, ok := s.configStore.Get(KeyExtension)
	if !ok {
		return fallback
	}
	ext, ok := val.(string)
	if !ok {
		return fallback
	}
	return domain.NormaliseExtension(ext)
}

func (s *SettingsService) getFileMode(fallback os.FileMode) os.FileMode {
	mode := s.configStore.GetInt(KeyFileMode)
	if mode <= 0 || mode > 0o777 {
		return fallback
	}
	fm := os.FileMode(mode)
	if fm&0o600 != 0o600 {
		return fallback
	}
	return fm
}
