// Package app wires configuration, storage, clients and services into the
// running application.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/brfintools/fiitrack/internal/clients/brapi"
	"github.com/brfintools/fiitrack/internal/clients/gemini"
	"github.com/brfintools/fiitrack/internal/clients/newsrss"
	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/interfaces"
	"github.com/brfintools/fiitrack/internal/services/analyst"
	"github.com/brfintools/fiitrack/internal/services/ledger"
	"github.com/brfintools/fiitrack/internal/services/market"
	"github.com/brfintools/fiitrack/internal/services/portfolio"
	"github.com/brfintools/fiitrack/internal/services/preferences"
	"github.com/brfintools/fiitrack/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config             *common.Config
	Logger             *common.Logger
	Storage            interfaces.StorageManager
	BrapiClient        interfaces.MarketDataClient
	GeminiClient       interfaces.AIClient
	LedgerService      interfaces.LedgerService
	PortfolioService   interfaces.PortfolioService
	MarketService      interfaces.MarketService
	AnalystService     interfaces.AnalystService
	PreferencesService interfaces.PreferencesService
	StartupTime        time.Time

	scheduler *cron.Cron
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients and services. configPath may be empty,
// in which case FIITRACK_CONFIG and the binary directory are checked.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	binDir := getBinaryDir()
	if configPath == "" {
		configPath = os.Getenv("FIITRACK_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "fiitrack.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/fiitrack.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app := &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		StartupTime: time.Now(),
	}

	app.PreferencesService = preferences.NewService(storageManager, logger)

	// The brapi token can come from config/env or from saved preferences.
	ctx := context.Background()
	brapiToken := config.Clients.Brapi.Token
	if brapiToken == "" {
		if prefs, err := app.PreferencesService.GetPreferences(ctx); err == nil {
			brapiToken = prefs.BrapiToken
		}
	}
	if brapiToken == "" {
		logger.Warn().Msg("brapi token not configured, using the free tier")
	}

	app.BrapiClient = brapi.NewClient(brapiToken,
		brapi.WithBaseURL(config.Clients.Brapi.BaseURL),
		brapi.WithLogger(logger),
		brapi.WithRateLimit(config.Clients.Brapi.RateLimit),
		brapi.WithTimeout(config.Clients.Brapi.GetTimeout()),
	)

	newsClient := newsrss.NewClient(
		newsrss.WithFeedURL(config.Clients.News.FeedURL),
		newsrss.WithLogger(logger),
		newsrss.WithTimeout(config.Clients.News.GetTimeout()),
	)

	app.LedgerService = ledger.NewService(storageManager, logger)
	app.PortfolioService = portfolio.NewService(storageManager, app.PreferencesService, logger)
	app.MarketService = market.NewService(storageManager, app.BrapiClient, newsClient,
		config.Clients.News.Limit, logger)

	if config.Clients.Gemini.APIKey != "" {
		geminiClient, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client unavailable, analyst disabled")
		} else {
			app.GeminiClient = geminiClient
			app.AnalystService = analyst.NewService(app.PortfolioService, geminiClient, logger)
		}
	} else {
		logger.Info().Msg("Gemini API key not configured, analyst disabled")
	}

	logger.Info().
		Str("environment", config.Environment).
		Bool("analyst", app.AnalystService != nil).
		Msg("Application initialized")

	return app, nil
}

// Close stops background work and releases resources.
func (a *App) Close() error {
	a.StopScheduler()
	if a.GeminiClient != nil {
		a.GeminiClient.Close()
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
