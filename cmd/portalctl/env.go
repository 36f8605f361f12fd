package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"

	"fundportal/internal/config"
	"fundportal/internal/database"
	"fundportal/internal/server"
	"fundportal/internal/storage"
	"fundportal/internal/store"
)

// env is the application stack a command runs against.
type env struct {
	cfg *config.Config
	db  *database.Manager
	svc server.Services
}

// openEnv connects to the configured database and wires the services.
// The caller must close it.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	schedule, err := server.FeeSchedule(cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	files := storage.NewLocalStorage(storage.Options{
		Dir:          cfg.UploadDir,
		BaseURL:      cfg.UploadBaseURL,
		MaxMB:        cfg.UploadMaxMB,
		AllowedTypes: cfg.UploadAllowedTypes,
	})
	mirror := store.NewMirror(ctx, cfg.RedisAddr, cfg.SessionTTL)

	return &env{cfg: cfg, db: db, svc: server.NewServices(db.DB(), mirror, files, schedule)}, nil
}

func (e *env) Close() {
	if err := e.db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing database: %v\n", err)
	}
}

// printMarkdown renders md for the terminal, or prints it as is when raw is
// set or rendering fails.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
