package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/GhaliAmli/student-focus/internal/config"
	"github.com/GhaliAmli/student-focus/internal/database"
	"github.com/GhaliAmli/student-focus/internal/models"
	"github.com/GhaliAmli/student-focus/internal/repository"
	"github.com/GhaliAmli/student-focus/internal/server"
	"github.com/GhaliAmli/student-focus/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	configureLogging(cfg.LogLevel)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	stateRepo := repository.NewStateRepository(db)
	appStore := store.New(stateRepo, store.WithThemeApplier(logTheme))

	ctx := context.Background()
	if err := appStore.Load(ctx); err != nil {
		slog.Error("loading state", "error", err)
		os.Exit(1)
	}

	if cfg.SeedSampleData {
		seeded, err := appStore.SeedSampleData(ctx)
		if err != nil {
			slog.Error("seeding sample data", "error", err)
			os.Exit(1)
		}
		if seeded {
			slog.Info("seeded sample data")
		}
	}

	srv := server.New(appStore, cfg)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// logTheme is the server-side stand-in for the document-level presentation
// hook: clients read the active settings from the API, the server just
// records the change.
func logTheme(settings models.Settings) {
	slog.Info("presentation settings applied", "theme", settings.Theme, "accent", settings.AccentColor)
}

func configureLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}
