package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir   = "storage.data_dir"
	keyRulesFile = "storage.rules_file"
	keyAreasFile = "storage.areas_file"
	keyTicketLog = "storage.ticket_log"
	keyStrategy  = "classifier.strategy"
)

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
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}

	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			DataDir:   s.configStore.GetString(keyDataDir), // No default - resolved by the caller
			RulesFile: s.getString(keyRulesFile, defaults.Storage.RulesFile),
			AreasFile: s.getString(keyAreasFile, defaults.Storage.AreasFile),
			TicketLog: s.getTicketLog(defaults.Storage.TicketLog),
		},
		Classifier: domain.ClassifierSettings{
			Strategy: s.getStrategy(defaults.Classifier.Strategy),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	if err := s.configStore.Set(keyDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save data_dir: %w", err)
	}
	if err := s.configStore.Set(keyRulesFile, settings.Storage.RulesFile); err != nil {
		return fmt.Errorf("save rules_file: %w", err)
	}
	if err := s.configStore.Set(keyAreasFile, settings.Storage.AreasFile); err != nil {
		return fmt.Errorf("save areas_file: %w", err)
	}
	if err := s.configStore.Set(keyTicketLog, settings.Storage.TicketLog.String()); err != nil {
		return fmt.Errorf("save ticket_log: %w", err)
	}
	if err := s.configStore.Set(keyStrategy, settings.Classifier.Strategy.String()); err != nil {
		return fmt.Errorf("save strategy: %w", err)
	}

	return nil
}

// Set validates and persists a single setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyDataDir:
	case keyRulesFile, keyAreasFile:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
	case keyTicketLog:
		if !domain.TicketLogBackend(value).IsValid() {
			return fmt.Errorf("%w: ticket log backend %q (want one of %v)",
				domain.ErrInvalidInput, value, domain.AllTicketLogBackends())
		}
	case keyStrategy:
		if !domain.Strategy(value).IsValid() {
			return fmt.Errorf("%w: strategy %q (want one of %v)",
				domain.ErrInvalidInput, value, domain.AllStrategies())
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	return []string{keyDataDir, keyRulesFile, keyAreasFile, keyTicketLog, keyStrategy}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getTicketLog(defaultVal domain.TicketLogBackend) domain.TicketLogBackend {
	backend := domain.TicketLogBackend(s.configStore.GetString(keyTicketLog))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getStrategy(defaultVal domain.Strategy) domain.Strategy {
	strategy := domain.Strategy(s.configStore.GetString(keyStrategy))
	if !strategy.IsValid() {
		return defaultVal
	}
	return strategy
}
