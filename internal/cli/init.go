// Package cli provides common CLI initialization utilities.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"expenses/internal/backend"
	"expenses/internal/config"
	"expenses/internal/log"
)

// SetupLogger builds the application logger from cfg and installs it as
// the slog default. An unknown level falls back to warn.
func SetupLogger(cfg *config.Config) *log.Logger {
	lc := log.DefaultConfig()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		lc.Level = level
	}
	lc.Format = cfg.LogFormat

	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Validation failures are written to stderr and exit the process, since
// the logger cannot be configured from an invalid config.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.New(log.DefaultConfig()).WithComponent(log.ComponentConfig).Error("Configuration validation failed",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeConfiguration)
		os.Exit(1)
	}
	return cfg
}

// InitBackend creates the repository selected by cfg.
// Returns the result or exits the process on failure.
func InitBackend(ctx context.Context, logger *log.Logger, cfg *config.Config) *backend.BackendResult {
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration",
			log.FieldOperation, log.OpStartup, log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	res, err := backend.NewFactory(logger).CreateBackend(ctx, bc)
	if err != nil {
		logger.Error("Failed to initialize backend",
			log.FieldOperation, log.OpStartup, log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	return res
}
