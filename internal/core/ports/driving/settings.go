package driving

import "github.com/custodia-labs/jsonstore/internal/core/domain"

// SettingsService manages store settings.
type SettingsService interface {
	// Get retrieves current store settings.
	Get() (*domain.StoreSettings, error)

	// Save persists store settings.
	Save(settings *domain.StoreSettings) error

	// SetDataDir updates the directory holding the JSON files.
	SetDataDir(dir string) error

	// SetExtension updates the file extension appended to logical names.
	SetExtension(ext string) error

	// SetIndent toggles pretty-printed output.
	SetIndent(indent bool) error

	// GetDefaults returns default settings.
	GetDefaults() domain.StoreSettings
}
