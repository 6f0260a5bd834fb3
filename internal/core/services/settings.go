package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
	"github.com/tikk3r/prefactor-eor/internal/core/ports/driven"
	"github.com/tikk3r/prefactor-eor/internal/core/ports/driving"
	"github.com/tikk3r/prefactor-eor/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPipelineDuration  = "pipeline.duration"
	KeyOutputDirectory   = "output.directory"
	KeyOutputEmbedParset = "output.embed_parset"
)

// SettingsService manages tool settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Invalid stored values fall back to the
// defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Pipeline: domain.PipelineSettings{
			Duration: s.getDuration(defaults.Pipeline.Duration),
		},
		Output: domain.OutputSettings{
			Directory:   s.configStore.GetString(KeyOutputDirectory),
			EmbedParset: s.getBool(KeyOutputEmbedParset, defaults.Output.EmbedParset),
		},
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(KeyPipelineDuration, settings.Pipeline.Duration); err != nil {
		return fmt.Errorf("save pipeline duration: %w", err)
	}
	if err := s.configStore.Set(KeyOutputDirectory, settings.Output.Directory); err != nil {
		return fmt.Errorf("save output directory: %w", err)
	}
	if err := s.configStore.Set(KeyOutputEmbedParset, settings.Output.EmbedParset); err != nil {
		return fmt.Errorf("save output embed_parset: %w", err)
	}
	return s.configStore.Save()
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeyPipelineDuration:
		if !domain.IsISODuration(value) {
			return fmt.Errorf("%w: %q is not an ISO-8601 duration", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, value)
	case KeyOutputDirectory:
		return s.configStore.Set(key, value)
	case KeyOutputEmbedParset:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, b)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
}

// Keys lists the settable keys.
func (s *SettingsService) Keys() []string {
	return []string{KeyPipelineDuration, KeyOutputDirectory, KeyOutputEmbedParset}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getDuration(defaultVal string) string {
	val := s.configStore.GetString(KeyPipelineDuration)
	if val == "" {
		return defaultVal
	}
	if !domain.IsISODuration(val) {
		logger.Warn("ignoring %s %q: not an ISO-8601 duration", KeyPipelineDuration, val)
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
