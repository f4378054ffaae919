package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/zeppex/zeppex/internal/cache"
	"github.com/zeppex/zeppex/internal/cli"
	"github.com/zeppex/zeppex/internal/config"
	"github.com/zeppex/zeppex/internal/health"
	"github.com/zeppex/zeppex/internal/zepp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine cache path: env var or default ~/.zeppex/cache.db
	cachePath := os.Getenv("ZEPPEX_CACHE")
	if cachePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		cachePath = filepath.Join(home, ".zeppex", "cache.db")
	}

	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	connect := func(cfg config.Config) (cli.HealthService, error) {
		client, err := zepp.NewClient(zepp.Config{
			Token:   cfg.Token,
			UserID:  cfg.UserID,
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return health.NewService(client, time.Local), nil
	}

	app := &cli.App{
		Config:  cfg,
		Logger:  logger,
		Loc:     time.Local,
		Connect: connect,
	}

	// The API-backed commands stay disabled until credentials exist; login
	// and status still work.
	if cfg.Token != "" && cfg.UserID != "" {
		svc, err := connect(cfg)
		if err != nil {
			return err
		}
		app.Health = svc

		store, err := cache.Open(cachePath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()
		app.Cache = store
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
