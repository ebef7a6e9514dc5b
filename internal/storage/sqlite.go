package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteProvider struct {
	*SQLProvider
}

func NewSQLiteProvider(ctx context.Context, path string) (*SQLiteProvider, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlProvider, err := NewSQLProvider("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across queries.
	sqlProvider.db.SetMaxOpenConns(1)

	provider := &SQLiteProvider{SQLProvider: sqlProvider}
	if err := provider.runMigrations(ctx, "sqlite3"); err != nil {
		provider.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return provider, nil
}
