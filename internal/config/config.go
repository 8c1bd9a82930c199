package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Data directory and file the document lives in
	DataDir  string
	DataFile string

	// Logging
	LogLevel slog.Level
}

func Load() *Config {
	return &Config{
		DataDir:  getEnv("EXPENSES_DATA_DIR", defaultDataDir()),
		DataFile: getEnv("EXPENSES_DATA_FILE", "expenses.json"),
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// Path returns the full path of the persisted document.
func (c *Config) Path() string {
	return filepath.Join(c.DataDir, c.DataFile)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.DataDir == "" {
		errors = append(errors, "data directory cannot be empty")
	}
	if c.DataFile == "" {
		errors = append(errors, "data file name cannot be empty")
	} else if strings.ContainsRune(c.DataFile, os.PathSeparator) {
		errors = append(errors, fmt.Sprintf("invalid data file name '%s': must not contain a path separator", c.DataFile))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// defaultDataDir resolves the per-user data directory: XDG_DATA_HOME when
// set, otherwise ~/.local/share, falling back to the working directory when
// no home is known.
func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
