package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coursify/coursify/internal/api"
	"github.com/coursify/coursify/internal/config"
	"github.com/coursify/coursify/internal/database"
	"github.com/coursify/coursify/internal/database/repository"
	"github.com/coursify/coursify/internal/prefs"
	"github.com/coursify/coursify/internal/service"
	"github.com/coursify/coursify/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		log.Fatalf("mkdir log dir: %v", err)
	}

	// the terminal belongs to the TUI, so logs go to a file
	logFile, err := tea.LogToFile(cfg.Log.Path, "coursify")
	if err != nil {
		log.Fatalf("log file: %v", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel()}))

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	store := prefs.NewStore(repository.NewKVRepo(db))

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.Timeout,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	session := service.NewSessionStore(store, client, logger)
	session.Hydrate()
	loader := &service.CatalogLoader{Source: client, Logger: logger}

	app := tui.New(ctx, session, loader, tui.Options{
		WebURL:           cfg.Backend.WebURL,
		AutoplayInterval: cfg.UI.AutoplayInterval,
		ToastDuration:    cfg.UI.ToastDuration,
	}, logger)
	defer app.Close()

	logger.Info("starting", "backend", cfg.Backend.URL)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
