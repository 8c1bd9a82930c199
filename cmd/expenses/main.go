package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"expenses/internal/cli"
	"expenses/internal/services"
	"expenses/internal/store"
	"expenses/internal/tui"
)

func main() {
	cli.LoadEnvFile()

	// Bootstrap logger for configuration failures, before the data
	// directory is known.
	bootLogger := cli.SetupLogger(os.Stderr, slog.LevelInfo)
	cfg := cli.LoadAndValidateConfig(bootLogger)

	// The terminal UI owns the terminal, so logs go to a file next to the
	// data file.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		bootLogger.Error("Failed to create data directory", "dir", cfg.DataDir, "error", err)
	}
	logger := cli.SetupLogger(cli.OpenLogFile(filepath.Join(cfg.DataDir, "expenses.log")), cfg.LogLevel)

	st := store.Open(cfg.Path(), logger)
	logger.Info("Document loaded", "path", cfg.Path(), "accounts", len(st.Accounts()))

	model := tui.New(
		services.NewAccounts(st, logger),
		services.NewLedger(st, logger),
		services.NewSuggestions(st),
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("UI error", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	logger.Info("Exited")
}
