// Package common provides shared utilities for Cryptofolio
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Cryptofolio
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Analytics   AnalyticsConfig `toml:"analytics"`
	Advisory    AdvisoryConfig  `toml:"advisory"`
	Clients     ClientsConfig   `toml:"clients"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host   string `toml:"host"`
	Port   int    `toml:"port"`
	APIKey string `toml:"api_key"` // optional; empty disables API-key auth
}

// StorageConfig holds storage configuration.
type StorageConfig struct {
	Path string `toml:"path"` // BadgerHold directory for reports + transaction journals
}

// AnalyticsConfig holds the analytics engine configuration.
type AnalyticsConfig struct {
	// CostBasisMethod selects lot consumption: FIFO, LIFO, HIFO or WAC.
	CostBasisMethod string `toml:"cost_basis_method"`
	// RiskFreeRate is the annual risk-free rate used by Sharpe/Sortino (e.g. 0.02).
	RiskFreeRate float64 `toml:"risk_free_rate"`
	// CalendarResampling switches the return series from transaction-indexed
	// to calendar-day resampling. Off by default to preserve the historical
	// transaction-indexed behaviour.
	CalendarResampling bool `toml:"calendar_resampling"`
}

// AdvisoryConfig holds configuration for the external advisory fan-out.
type AdvisoryConfig struct {
	Timeout string `toml:"timeout"` // per-branch timeout, e.g. "10s"
}

// GetTimeout parses and returns the per-branch advisory timeout
func (c *AdvisoryConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	RateLimit int    `toml:"rate_limit"` // requests per minute
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *GeminiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" (default) or "json"
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "localhost",
			Port: 8090,
		},
		Storage: StorageConfig{
			Path: "data/cryptofolio",
		},
		Analytics: AnalyticsConfig{
			CostBasisMethod: "FIFO",
			RiskFreeRate:    0.02,
		},
		Advisory: AdvisoryConfig{
			Timeout: "10s",
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model:     "gemini-3-flash-preview",
				RateLimit: 10,
				Timeout:   "60s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from a TOML file, applying defaults for
// missing sections and environment variable overrides afterwards.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file is fine - defaults + env overrides apply
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies CRYPTOFOLIO_* environment variable overrides.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("CRYPTOFOLIO_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("CRYPTOFOLIO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("CRYPTOFOLIO_API_KEY"); v != "" {
		config.Server.APIKey = v
	}
	if v := os.Getenv("CRYPTOFOLIO_STORAGE_PATH"); v != "" {
		config.Storage.Path = v
	}
	if v := os.Getenv("CRYPTOFOLIO_COST_BASIS_METHOD"); v != "" {
		config.Analytics.CostBasisMethod = v
	}
	if v := os.Getenv("CRYPTOFOLIO_RISK_FREE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analytics.RiskFreeRate = rate
		}
	}
	if v := os.Getenv("CRYPTOFOLIO_CALENDAR_RESAMPLING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Analytics.CalendarResampling = b
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		config.Clients.Gemini.APIKey = v
	}
	if v := os.Getenv("CRYPTOFOLIO_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
