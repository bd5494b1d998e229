package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/triage-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/triage-cli/internal/adapters/driven/report/xlsx"
	"github.com/custodia-labs/triage-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/triage-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/triage-cli/internal/adapters/driven/tickets"
	"github.com/custodia-labs/triage-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/triage-cli/internal/core/services"
	"github.com/custodia-labs/triage-cli/internal/logger"
)

// bootstrap builds the production services from config.toml.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	logger.Section("bootstrap")

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = filepath.Dir(configStore.Path())
	}
	logger.Debug("config: %s, data: %s", configStore.Path(), dataDir)

	rulesPath := resolve(dataDir, settings.Storage.RulesFile)
	ruleStore := services.NewRuleStore(jsonfile.NewRuleStore(rulesPath))
	if err := ruleStore.Load(ctx); err != nil {
		logger.Warn("continuing without custom rules; rule changes are refused until the file is fixed: %v", err)
	}

	areaStore := services.NewAreaStore(jsonfile.NewAreaStore(resolve(dataDir, settings.Storage.AreasFile)))
	if err := areaStore.Load(ctx); err != nil {
		logger.Warn("continuing without areas; area changes are refused until the file is fixed: %v", err)
	}

	ticketLog, closeFn, err := openTicketLog(dataDir, settings.Storage.TicketLog)
	if err != nil {
		return nil, err
	}

	classifier := services.NewClassifier()
	scorer := services.NewCategoryScorer()

	return &cli.Services{
		Rules:      ruleStore,
		Areas:      areaStore,
		Classifier: classifier,
		Scorer:     scorer,
		Inference:  services.NewInferenceSession(scorer),
		Intake:     services.NewIntakeService(ruleStore, areaStore, classifier, ticketLog),
		Report:     services.NewReportService(ticketLog, xlsx.NewExporter()),
		Settings:   settingsService,
		Tickets:    tickets.NewFileReader(),
		RulesPath:  rulesPath,
		Close:      closeFn,
	}, nil
}

// openTicketLog opens the configured processed-ticket log.
// The returned close function may be nil.
func openTicketLog(dataDir string, backend domain.TicketLogBackend) (driven.TicketLog, func() error, error) {
	switch backend {
	case domain.TicketLogSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening ticket database: %w", err)
		}
		logger.Debug("ticket log: %s", store.Path())
		return store.TicketLog(), store.Close, nil
	default:
		path := filepath.Join(dataDir, jsonfile.TicketLogFile)
		logger.Debug("ticket log: %s", path)
		return jsonfile.NewTicketLog(path), nil, nil
	}
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
