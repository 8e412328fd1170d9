package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/doable/internal/assist"
	"github.com/sandeepkv93/doable/internal/storage"
	"github.com/sandeepkv93/doable/internal/store"
	"github.com/sandeepkv93/doable/internal/update"
)

func main() {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	logger, closeLogger := newLogger(cfg.LogPath)
	defer closeLogger()

	// Storage and assistant failures both degrade instead of aborting:
	// no database means a memory-only session, no api key means the
	// assistant answers with its defaults.
	var repo store.Repository
	sqlite, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Warn("task storage unavailable, running in memory", "path", cfg.DBPath, "error", err)
	} else {
		repo = sqlite
		defer sqlite.Close()
	}

	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, assistant replies with built-in defaults")
	}
	client := assist.NewClient(
		&http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second},
		logger,
		cfg.APIKey,
		cfg.Model,
	)

	tasks := store.New(repo, client, logger)
	restored := tasks.Load(context.Background())
	logger.Info("doable starting", "restored", restored, "db", cfg.DBPath, "model", cfg.Model)

	program := tea.NewProgram(update.NewModel(tasks, client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "doable failed: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured file so log lines never tear the TUI.
// Any problem opening the file silently drops the logs instead.
func newLogger(path string) (*slog.Logger, func()) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(file, nil)), func() { _ = file.Close() }
}
