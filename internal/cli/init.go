// Package cli provides common CLI initialization utilities shared by
// the entrypoints under cmd/.
package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"budget/internal/backend"
	"budget/internal/config"
)

// SetupLogger initializes structured logging at the given level and sets
// the result as the default logger. Logs go to stderr so they never
// interleave with the menus on stdout.
func SetupLogger(level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
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

// OpenBackend builds the repositories for the configured backend.
// Returns the repositories and their cleanup or exits the process on failure.
func OpenBackend(ctx context.Context, logger *slog.Logger, cfg *config.Config) (backend.Repositories, backend.CleanupFunc) {
	repos, cleanup, err := backend.Open(ctx, logger, backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		DatabaseURL:  cfg.ConnString(),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if cleanup == nil {
		cleanup = func() error { return nil }
	}
	return repos, cleanup
}
