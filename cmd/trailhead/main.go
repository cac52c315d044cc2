package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/trailhead-dev/trailhead/db"
	"github.com/trailhead-dev/trailhead/internal/auth"
	"github.com/trailhead-dev/trailhead/internal/config"
	"github.com/trailhead-dev/trailhead/internal/imagestore"
	"github.com/trailhead-dev/trailhead/internal/router"
	"github.com/trailhead-dev/trailhead/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
		logger.Error("failed to initialize JWT secret", "error", err)
		os.Exit(1)
	}

	session.SetCookieDomain(cfg.CookieDomain)

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	store, err := imagestore.NewS3Store(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize image store", "error", err)
		os.Exit(1)
	}
	imagestore.Init(store)

	r := router.NewRouter()

	logger.Info("starting server", "port", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
