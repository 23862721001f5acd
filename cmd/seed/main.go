// Command seed resets every store and reloads it from the JSON dataset
// directory. It assumes exclusive access to the database; do not run it
// against a server taking live traffic.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/baisalikhan/next-stock/internal/config"
	"github.com/baisalikhan/next-stock/internal/seed"
	"github.com/baisalikhan/next-stock/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	logger.Info("Seeding store", "db_path", cfg.SQLiteDBPath, "data_dir", cfg.SeedDataDir)
	if err := seed.New(store, cfg.SeedDataDir).Run(context.Background()); err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Seeding completed")
}
