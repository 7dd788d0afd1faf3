package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyCorpusSource     = "corpus.source"
	KeyCorpusURL        = "corpus.url"
	KeyCorpusPath       = "corpus.path"
	KeyCorpusSubset     = "corpus.subset"
	KeyCorpusCategories = "corpus.categories"
	KeyCorpusRemove     = "corpus.remove"
	KeySplitTestSize    = "split.test_size"
	KeySplitSeed        = "split.seed"
	KeyVectorStem       = "vectorizer.stem"
	KeyVectorStopWords  = "vectorizer.stop_words"
	KeyVectorAccents    = "vectorizer.strip_accents"
	KeyVectorSmoothIDF  = "vectorizer.smooth_idf"
	KeyVectorNorm       = "vectorizer.norm"
	KeyClassifierAlpha  = "classifier.alpha"
)

var settingKeys = []string{
	KeyCorpusSource,
	KeyCorpusURL,
	KeyCorpusPath,
	KeyCorpusSubset,
	KeyCorpusCategories,
	KeyCorpusRemove,
	KeySplitTestSize,
	KeySplitSeed,
	KeyVectorStem,
	KeyVectorStopWords,
	KeyVectorAccents,
	KeyVectorSmoothIDF,
	KeyVectorNorm,
	KeyClassifierAlpha,
}

// SettingsService reads and writes pipeline settings through a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Unset keys take their defaults.
// Values are not validated here so a broken file can still be repaired.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Corpus: domain.CorpusSettings{
			Source:     domain.SourceType(s.getString(KeyCorpusSource, string(defaults.Corpus.Source))),
			URL:        s.getString(KeyCorpusURL, defaults.Corpus.URL),
			Path:       s.configStore.GetString(KeyCorpusPath),
			Subset:     domain.Subset(s.getString(KeyCorpusSubset, string(defaults.Corpus.Subset))),
			Categories: s.configStore.GetStringSlice(KeyCorpusCategories),
			Remove:     s.configStore.GetStringSlice(KeyCorpusRemove),
		},
		Split: domain.SplitSettings{
			TestSize: s.getFloat(KeySplitTestSize, defaults.Split.TestSize),
		},
		Vectorizer: domain.VectorizerSettings{
			Stem:         s.getBool(KeyVectorStem, defaults.Vectorizer.Stem),
			StopWords:    s.getBool(KeyVectorStopWords, defaults.Vectorizer.StopWords),
			StripAccents: s.getBool(KeyVectorAccents, defaults.Vectorizer.StripAccents),
			SmoothIDF:    s.getBool(KeyVectorSmoothIDF, defaults.Vectorizer.SmoothIDF),
			Norm:         domain.NormType(s.configStore.GetString(KeyVectorNorm)),
		},
		Classifier: domain.ClassifierSettings{
			Alpha: s.getFloat(KeyClassifierAlpha, defaults.Classifier.Alpha),
		},
	}

	if _, ok := s.configStore.Get(KeySplitSeed); ok {
		seed := int64(s.configStore.GetInt(KeySplitSeed))
		settings.Split.Seed = &seed
	}

	return settings, nil
}

// Save validates and persists every setting.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		KeyCorpusSource:     settings.Corpus.Source.String(),
		KeyCorpusURL:        settings.Corpus.URL,
		KeyCorpusPath:       settings.Corpus.Path,
		KeyCorpusSubset:     settings.Corpus.Subset.String(),
		KeyCorpusCategories: nonNil(settings.Corpus.Categories),
		KeyCorpusRemove:     nonNil(settings.Corpus.Remove),
		KeySplitTestSize:    settings.Split.TestSize,
		KeyVectorStem:       settings.Vectorizer.Stem,
		KeyVectorStopWords:  settings.Vectorizer.StopWords,
		KeyVectorAccents:    settings.Vectorizer.StripAccents,
		KeyVectorSmoothIDF:  settings.Vectorizer.SmoothIDF,
		KeyVectorNorm:       string(settings.Vectorizer.Norm),
		KeyClassifierAlpha:  settings.Classifier.Alpha,
	}
	for _, key := range settingKeys {
		if key == KeySplitSeed {
			continue
		}
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	if settings.Split.Seed == nil {
		if err := s.configStore.Delete(KeySplitSeed); err != nil {
			return fmt.Errorf("save %s: %w", KeySplitSeed, err)
		}
		return nil
	}
	if err := s.configStore.Set(KeySplitSeed, *settings.Split.Seed); err != nil {
		return fmt.Errorf("save %s: %w", KeySplitSeed, err)
	}
	return nil
}

// Set parses value for key, validates the resulting settings and stores
// only that key. List values are comma-separated; an empty value clears them.
//
//nolint:gocyclo // One case per setting
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var stored any
	switch key {
	case KeyCorpusSource:
		settings.Corpus.Source = domain.SourceType(value)
		stored = value
	case KeyCorpusURL:
		settings.Corpus.URL = value
		stored = value
	case KeyCorpusPath:
		settings.Corpus.Path = value
		stored = value
	case KeyCorpusSubset:
		settings.Corpus.Subset = domain.Subset(value)
		stored = value
	case KeyCorpusCategories:
		settings.Corpus.Categories = splitList(value)
		stored = settings.Corpus.Categories
	case KeyCorpusRemove:
		settings.Corpus.Remove = splitList(value)
		stored = settings.Corpus.Remove
	case KeySplitTestSize:
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		settings.Split.TestSize = f
		stored = f
	case KeySplitSeed:
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrInvalidInput, key, value)
		}
		settings.Split.Seed = &seed
		stored = seed
	case KeyVectorStem, KeyVectorStopWords, KeyVectorAccents, KeyVectorSmoothIDF:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		*boolField(&settings.Vectorizer, key) = b
		stored = b
	case KeyVectorNorm:
		settings.Vectorizer.Norm = domain.NormType(value)
		stored = value
	case KeyClassifierAlpha:
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		settings.Classifier.Alpha = f
		stored = f
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Unset removes a key so its default applies again.
func (s *SettingsService) Unset(key string) error {
	if !isSettingKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("unset %s: %w", key, err)
	}
	return nil
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Show returns every key with its effective value, in Keys order.
func (s *SettingsService) Show() ([]driving.Setting, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	out := make([]driving.Setting, len(settingKeys))
	for i, key := range settingKeys {
		_, isSet := s.configStore.Get(key)
		out[i] = driving.Setting{Key: key, Value: Value(settings, key), IsSet: isSet}
	}
	return out, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Validate checks the stored settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// Path returns the location of the backing configuration.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Value formats the setting under key for display.
func Value(settings *domain.Settings, key string) string {
	switch key {
	case KeyCorpusSource:
		return settings.Corpus.Source.String()
	case KeyCorpusURL:
		return settings.Corpus.URL
	case KeyCorpusPath:
		return settings.Corpus.Path
	case KeyCorpusSubset:
		return settings.Corpus.Subset.String()
	case KeyCorpusCategories:
		return strings.Join(settings.Corpus.Categories, ",")
	case KeyCorpusRemove:
		return strings.Join(settings.Corpus.Remove, ",")
	case KeySplitTestSize:
		return strconv.FormatFloat(settings.Split.TestSize, 'g', -1, 64)
	case KeySplitSeed:
		if settings.Split.Seed == nil {
			return ""
		}
		return strconv.FormatInt(*settings.Split.Seed, 10)
	case KeyVectorStem:
		return strconv.FormatBool(settings.Vectorizer.Stem)
	case KeyVectorStopWords:
		return strconv.FormatBool(settings.Vectorizer.StopWords)
	case KeyVectorAccents:
		return strconv.FormatBool(settings.Vectorizer.StripAccents)
	case KeyVectorSmoothIDF:
		return strconv.FormatBool(settings.Vectorizer.SmoothIDF)
	case KeyVectorNorm:
		return string(settings.Vectorizer.Norm)
	case KeyClassifierAlpha:
		return strconv.FormatFloat(settings.Classifier.Alpha, 'g', -1, 64)
	default:
		return ""
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func boolField(v *domain.VectorizerSettings, key string) *bool {
	switch key {
	case KeyVectorStem:
		return &v.Stem
	case KeyVectorStopWords:
		return &v.StopWords
	case KeyVectorAccents:
		return &v.StripAccents
	default:
		return &v.SmoothIDF
	}
}

func isSettingKey(key string) bool {
	for _, k := range settingKeys {
		if k == key {
			return true
		}
	}
	return false
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", domain.ErrInvalidInput, key, value)
	}
	return f, nil
}

// splitList parses "a, b,,c" into [a b c].
func splitList(value string) []string {
	list := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
