// Package common provides shared utilities for FIITrack
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for FIITrack
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
	Refresh     RefreshConfig `toml:"refresh"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the embedded store location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Brapi  BrapiConfig  `toml:"brapi"`
	Gemini GeminiConfig `toml:"gemini"`
	News   NewsConfig   `toml:"news"`
}

// BrapiConfig holds brapi.dev API configuration
type BrapiConfig struct {
	BaseURL   string `toml:"base_url"`
	Token     string `toml:"token"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *BrapiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// NewsConfig holds the FII news feed configuration
type NewsConfig struct {
	FeedURL string `toml:"feed_url"`
	Limit   int    `toml:"limit"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *NewsConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// RefreshConfig controls the background market-data refresh schedule.
type RefreshConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"` // cron expression, default every 15 minutes
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8370,
		},
		Storage: StorageConfig{
			Path: "data/fiitrack",
		},
		Clients: ClientsConfig{
			Brapi: BrapiConfig{
				BaseURL:   "https://brapi.dev/api",
				RateLimit: 5,
				Timeout:   "30s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
			News: NewsConfig{
				FeedURL: "https://www.infomoney.com.br/onde-investir/fundos-imobiliarios/feed/",
				Limit:   20,
				Timeout: "15s",
			},
		},
		Refresh: RefreshConfig{
			Enabled: true,
			Cron:    "@every 15m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FIITRACK_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FIITRACK_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FIITRACK_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FIITRACK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("FIITRACK_DATA_PATH"); path != "" {
		config.Storage.Path = filepath.Join(path, "fiitrack")
	}

	if token := os.Getenv("BRAPI_TOKEN"); token != "" {
		config.Clients.Brapi.Token = token
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Clients.Gemini.APIKey = key
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
