// Package backend selects and wires a persistence backend from
// configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"budget/internal/storage"
	"budget/internal/storage/memory"
	"budget/internal/storage/postgres"
	"budget/internal/storage/sqlite"
)

// Type identifies a persistence backend.
type Type string

const (
	PostgresBackend Type = "postgres"
	SQLiteBackend   Type = "sqlite"
	MemoryBackend   Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case PostgresBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Repositories bundles the two persistence ports provided by one backend.
type Repositories struct {
	IncomeSources storage.IncomeSourceRepository
	Expenses      storage.ExpenseRepository
}

// CleanupFunc releases backend resources; it may be nil.
type CleanupFunc func() error

// Config holds backend selection settings.
type Config struct {
	Type Type

	// Postgres specific
	DatabaseURL string

	// SQLite specific
	SQLiteDBPath string
}

// Open builds the repository pair for the configured backend and runs
// schema migrations where the backend has a schema.
func Open(ctx context.Context, logger *slog.Logger, cfg Config) (Repositories, CleanupFunc, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Type {
	case PostgresBackend:
		store, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return Repositories{}, nil, fmt.Errorf("initialize postgres backend: %w", err)
		}
		if err := storage.MigratePostgres(cfg.DatabaseURL); err != nil {
			store.Close()
			return Repositories{}, nil, fmt.Errorf("migrate postgres schema: %w", err)
		}
		logger.Info("Initialized postgres backend")
		cleanup := func() error {
			store.Close()
			return nil
		}
		return Repositories{IncomeSources: store, Expenses: store}, cleanup, nil

	case SQLiteBackend:
		store, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return Repositories{}, nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return Repositories{IncomeSources: store, Expenses: store}, store.Close, nil

	case MemoryBackend:
		store := memory.New()
		logger.Info("Initialized memory backend")
		return Repositories{IncomeSources: store, Expenses: store}, nil, nil

	default:
		return Repositories{}, nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
}
