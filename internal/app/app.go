// Package app wires configuration, storage, clients and services into one
// application core shared by the server binary and tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jcleland/cryptofolio/internal/clients/gemini"
	"github.com/jcleland/cryptofolio/internal/common"
	"github.com/jcleland/cryptofolio/internal/interfaces"
	"github.com/jcleland/cryptofolio/internal/services/advisory"
	"github.com/jcleland/cryptofolio/internal/services/analytics"
	"github.com/jcleland/cryptofolio/internal/storage"
)

// App holds all initialized services, clients and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	GeminiClient     interfaces.GeminiClient
	AnalyticsService interfaces.AnalyticsService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, clients and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Config resolution: explicit path, CRYPTOFOLIO_CONFIG, binary dir, dev fallback.
	if configPath == "" {
		configPath = os.Getenv("CRYPTOFOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "cryptofolio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/cryptofolio.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Gemini is optional: no API key means summaries degrade to empty.
	var geminiClient interfaces.GeminiClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client unavailable - report summaries disabled")
		} else {
			geminiClient = client
		}
	} else {
		logger.Info().Msg("Gemini API key not configured - report summaries disabled")
	}

	// Advisory analyzers are external collaborators registered at runtime;
	// unregistered branches degrade to unavailable sections.
	aggregator := advisory.NewAggregator(nil, nil, nil, nil, config.Advisory.GetTimeout(), logger)

	analyticsService := analytics.NewService(config.Analytics, aggregator, geminiClient, logger)

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		GeminiClient:     geminiClient,
		AnalyticsService: analyticsService,
		StartupTime:      time.Now(),
	}, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
