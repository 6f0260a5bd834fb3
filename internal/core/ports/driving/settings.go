package driving

import "github.com/tikk3r/prefactor-eor/internal/core/domain"

// SettingsService manages tool settings.
type SettingsService interface {
	// Get retrieves the effective settings: defaults overlaid with the
	// settings file and the environment.
	Get() (*domain.AppSettings, error)

	// Save persists settings to the settings file.
	Save(settings *domain.AppSettings) error

	// Set parses value for key and persists it.
	Set(key, value string) error

	// Keys lists the settable keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
