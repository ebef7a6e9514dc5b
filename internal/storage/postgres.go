package storage

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresProvider struct {
	*SQLProvider
}

func NewPostgresProvider(ctx context.Context, dsn string) (*PostgresProvider, error) {
	sqlProvider, err := NewSQLProvider("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := sqlProvider.db.PingContext(ctx); err != nil {
		sqlProvider.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	provider := &PostgresProvider{SQLProvider: sqlProvider}
	if err := provider.runMigrations(ctx, "pgx"); err != nil {
		provider.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return provider, nil
}
