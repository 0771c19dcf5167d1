package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"coopledger/internal/log"
)

type Config struct {
	// Database
	DBPath string

	// Export
	ExportDir    string
	ExportFormat string

	// Logging
	LogLevel  string
	LogFormat string

	// Dashboard
	TrendWindow    int
	ActivityLimit  int
	CurrencySymbol string
}

var (
	validExportFormats = []string{"csv", "xlsx"}
	validLogFormats    = []string{"text", "json"}
)

func Load() *Config {
	return &Config{
		DBPath: getEnv("LEDGER_DB_PATH", "./data/coopledger.db"),

		ExportDir:    getEnv("EXPORT_DIR", "./exports"),
		ExportFormat: getEnv("EXPORT_FORMAT", "csv"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		TrendWindow:    getEnvInt("TREND_WINDOW", 12),
		ActivityLimit:  getEnvInt("ACTIVITY_LIMIT", 10),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
			}
		}
	}

	if c.ExportDir == "" {
		errors = append(errors, "export directory cannot be empty")
	}
	if !slices.Contains(validExportFormats, c.ExportFormat) {
		errors = append(errors, fmt.Sprintf("invalid export format '%s': must be one of %v", c.ExportFormat, validExportFormats))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validLogFormats))
	}

	if c.TrendWindow < 1 || c.TrendWindow > 120 {
		errors = append(errors, fmt.Sprintf("invalid trend window %d: must be between 1 and 120", c.TrendWindow))
	}
	if c.ActivityLimit < 1 || c.ActivityLimit > 1000 {
		errors = append(errors, fmt.Sprintf("invalid activity limit %d: must be between 1 and 1000", c.ActivityLimit))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// LoggerConfig converts the logging settings for log.New.
func (c *Config) LoggerConfig() log.Config {
	cfg := log.DefaultConfig()
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		cfg.Level = level
	}
	cfg.Format = c.LogFormat
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
