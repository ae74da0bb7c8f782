// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the workflow editor core.
type Config struct {
	Service ServiceConfig
	Storage StorageConfig
	App     AppConfig
}

// ServiceConfig addresses the remote execution service.
type ServiceConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// StorageConfig selects the blob store backing.
type StorageConfig struct {
	// Path of the SQLite database file; empty selects the in-memory store.
	DBPath string
}

// AppConfig holds miscellaneous application settings.
type AppConfig struct {
	LogLevel string
}

// Load reads configuration from environment variables, consulting a
// .env file when present.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file is the normal case.
	_ = godotenv.Load()

	cfg := &Config{
		Service: ServiceConfig{
			BaseURL:        getEnvWithDefault("SERVICE_URL", "http://localhost:8000/api"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 60*time.Second),
		},
		Storage: StorageConfig{
			DBPath: getEnvWithDefault("BLOB_DB_PATH", "stackweave.db"),
		},
		App: AppConfig{
			LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("SERVICE_URL is required")
	}
	if c.Service.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr := os.Getenv(key); valueStr != "" {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
