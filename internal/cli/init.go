// Package cli provides common initialization utilities for cmd/expenses:
// environment loading, logger setup and configuration validation.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"expenses/internal/config"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging writing to w and sets the
// result as the default logger.
func SetupLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenLogFile opens (creating if needed) the application log file inside the
// data directory. The terminal UI owns stdout, so logs go to a file; when the
// file cannot be opened, logging is discarded rather than corrupting the
// screen.
func OpenLogFile(path string) io.Writer {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}
