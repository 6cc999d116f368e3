// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aristath/folio/internal/utils"
	"github.com/aristath/folio/pkg/logger"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogPretty bool
	DevMode   bool

	// StrictValidation rejects negative shares and prices
	StrictValidation bool

	HistoryDefaultDays int
	HistoryMaxDays     int

	SnapshotSchedule  string // cron spec, seconds field first
	SnapshotRetention int

	CORSOrigins []string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvAsInt("FOLIO_PORT", 5000),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          getEnvAsBool("LOG_PRETTY", true),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		StrictValidation:   getEnvAsBool("FOLIO_STRICT_VALIDATION", false),
		HistoryDefaultDays: getEnvAsInt("FOLIO_HISTORY_DEFAULT_DAYS", 30),
		HistoryMaxDays:     getEnvAsInt("FOLIO_HISTORY_MAX_DAYS", 3650),
		SnapshotSchedule:   getEnv("FOLIO_SNAPSHOT_SCHEDULE", "@every 1m"),
		SnapshotRetention:  getEnvAsInt("FOLIO_SNAPSHOT_RETENTION", 1440),
		CORSOrigins:        getEnvAsList("FOLIO_CORS_ORIGINS", []string{"*"}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("FOLIO_PORT must be between 1 and 65535, got %d", c.Port)
	}
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("LOG_LEVEL %q is not a known level", c.LogLevel)
	}
	if c.HistoryDefaultDays < 1 {
		return fmt.Errorf("FOLIO_HISTORY_DEFAULT_DAYS must be positive, got %d", c.HistoryDefaultDays)
	}
	if c.HistoryMaxDays < c.HistoryDefaultDays {
		return fmt.Errorf("FOLIO_HISTORY_MAX_DAYS (%d) must not be below FOLIO_HISTORY_DEFAULT_DAYS (%d)",
			c.HistoryMaxDays, c.HistoryDefaultDays)
	}
	if strings.TrimSpace(c.SnapshotSchedule) == "" {
		return fmt.Errorf("FOLIO_SNAPSHOT_SCHEDULE must not be empty")
	}
	if c.SnapshotRetention < 1 {
		return fmt.Errorf("FOLIO_SNAPSHOT_RETENTION must be positive, got %d", c.SnapshotRetention)
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("FOLIO_CORS_ORIGINS must list at least one origin")
	}

	return nil
}

// AllowsAnyOrigin reports whether CORS is open to every origin
func (c *Config) AllowsAnyOrigin() bool {
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return utils.ParseCSV(value)
}
