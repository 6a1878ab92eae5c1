package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

type Config struct {
	// Backend selection
	DataBackend string

	// TSV
	ExpensesFile string

	// SQLite
	SQLiteDBPath string

	// Logging
	LogLevel  string
	LogFormat string
}

var (
	validBackends   = []string{"tsv", "sqlite", "memory"}
	validLogLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats = []string{"text", "json"}
)

func Load() *Config {
	return &Config{
		DataBackend:  getEnv("DATA_BACKEND", "tsv"),
		ExpensesFile: getEnv("EXPENSES_FILE", filepath.Join("data", "expenses.tsv")),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expenses.db"),
		LogLevel:     getEnv("LOG_LEVEL", "warn"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "tsv":
		if c.ExpensesFile == "" {
			errors = append(errors, "expenses file path cannot be empty when using tsv backend")
		} else if info, err := os.Stat(c.ExpensesFile); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("expenses file '%s' is a directory", c.ExpensesFile))
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validLogFormats))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
