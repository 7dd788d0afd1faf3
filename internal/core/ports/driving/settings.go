package driving

import "github.com/custodia-labs/newsbayes/internal/core/domain"

// Setting is one configuration key with its effective value.
type Setting struct {
	Key   string
	Value string

	// IsSet is false when the value is the default.
	IsSet bool
}

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults for unset keys.
	Get() (*domain.Settings, error)

	// Save validates and persists settings.
	Save(settings *domain.Settings) error

	// Set parses value for a dot-notation key (e.g. "split.test_size")
	// and persists it if the resulting settings are valid.
	Set(key, value string) error

	// Unset removes a key so its default applies again.
	Unset(key string) error

	// Keys returns every settable key in display order.
	Keys() []string

	// Show returns every key with its effective value, in Keys order.
	Show() ([]Setting, error)

	// Validate checks the stored settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Path returns the location of the backing configuration.
	Path() string
}
