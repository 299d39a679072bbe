// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, oracle access, catalog sources, and session settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Oracle Configuration
	OracleAPIKey  string // API key for the OpenAI-compatible intent endpoint
	OracleBaseURL string // Base URL of the OpenAI-compatible endpoint
	OracleModel   string // Chat model used for intent extraction
	OracleTimeout time.Duration

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir        string // Data directory for SQLite database
	EntitiesPath   string // Path to the campus entities catalog file
	FacilitiesPath string // Path to the optional facility detail file

	// Session Configuration
	SessionTTL time.Duration // Idle lifetime of a confirmation session

	// Chat Rate Limiting (token bucket per session)
	ChatRateBurst  float64 // Maximum burst of chat turns per session
	ChatRateRefill float64 // Chat turns refilled per second

	// Sentry Configuration (empty token = disabled)
	SentryToken       string
	SentryHost        string
	SentryEnvironment string
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Oracle Configuration
		OracleAPIKey:  getEnv("ORACLE_API_KEY", ""),
		OracleBaseURL: getEnv("ORACLE_BASE_URL", "https://open.bigmodel.cn/api/paas/v4"),
		OracleModel:   getEnv("ORACLE_MODEL", "glm-4.5"),
		OracleTimeout: getDurationEnv("ORACLE_TIMEOUT", 10*time.Second),

		// Metrics Authentication
		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		// Server Configuration
		Port:            getEnv("PORT", "10000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		// Data Configuration
		DataDir:        getEnv("DATA_DIR", getDefaultDataDir()),
		EntitiesPath:   getEnv("ENTITIES_PATH", "./data/entities.json"),
		FacilitiesPath: getEnv("FACILITIES_PATH", "./data/facilities.json"),

		// Session Configuration
		SessionTTL: getDurationEnv("SESSION_TTL", 10*time.Minute),

		// Chat Rate Limiting
		ChatRateBurst:  getFloatEnv("CHAT_RATE_BURST", 10),
		ChatRateRefill: getFloatEnv("CHAT_RATE_REFILL", 0.5),

		// Sentry Configuration
		SentryToken:       getEnv("SENTRY_TOKEN", ""),
		SentryHost:        getEnv("SENTRY_HOST", "errors.example.com"),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "production"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.EntitiesPath == "" {
		errs = append(errs, errors.New("ENTITIES_PATH is required"))
	}
	if c.OracleBaseURL == "" {
		errs = append(errs, errors.New("ORACLE_BASE_URL is required"))
	}
	if c.OracleModel == "" {
		errs = append(errs, errors.New("ORACLE_MODEL is required"))
	}
	if c.OracleTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ORACLE_TIMEOUT must be positive, got %v", c.OracleTimeout))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %v", c.SessionTTL))
	}
	if c.ChatRateBurst <= 0 || c.ChatRateRefill <= 0 {
		errs = append(errs, fmt.Errorf("CHAT_RATE_BURST and CHAT_RATE_REFILL must be positive, got %v and %v", c.ChatRateBurst, c.ChatRateRefill))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getFloatEnv retrieves float environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// SQLitePath returns the full path to the SQLite database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "cache.db")
}

// HasOracle returns true if the intent oracle is configured with credentials.
func (c *Config) HasOracle() bool {
	return c.OracleAPIKey != ""
}
