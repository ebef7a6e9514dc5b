package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLProvider stores slots as rows of the "slots" table.
type SQLProvider struct {
	db     *sqlx.DB
	driver string
	logger *slog.Logger
}

func NewSQLProvider(driverName string, dataSource string) (*SQLProvider, error) {
	db, err := sqlx.Open(driverName, dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}

	return &SQLProvider{
		db:     db,
		driver: driverName,
		logger: slog.With("component", "storage", "backend", driverName),
	}, nil
}

func (p *SQLProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *SQLProvider) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.GetContext(ctx, &value, p.db.Rebind(`SELECT value FROM slots WHERE key = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (p *SQLProvider) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	query := p.db.Rebind(`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	_, err := p.db.ExecContext(ctx, query, key, data, time.Now().UTC())
	return err
}

func (p *SQLProvider) Remove(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, p.db.Rebind(`DELETE FROM slots WHERE key = ?`), key)
	return err
}

func (p *SQLProvider) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := p.db.SelectContext(ctx, &keys, `SELECT key FROM slots ORDER BY key`); err != nil {
		return nil, err
	}
	return keys, nil
}

// GetSchemaVersion returns the highest applied migration, or 0 for an empty database.
func (p *SQLProvider) GetSchemaVersion(ctx context.Context) (int, error) {
	if _, err := p.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER NOT NULL PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`); err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var version int
	if err := p.db.GetContext(ctx, &version, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return 0, err
	}
	return version, nil
}

// runMigrations brings the schema to the latest embedded version.
func (p *SQLProvider) runMigrations(ctx context.Context, driver string) error {
	current, err := p.GetSchemaVersion(ctx)
	if err != nil {
		return err
	}

	migrations, err := PlanMigrations(driver, current, -1)
	if errors.Is(err, ErrSchemaUpToDate) {
		p.logger.Debug("Schema is up to date", "version", current)
		return nil
	}
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if err := p.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("migration %04d_%s failed: %w", m.Version, m.Name, err)
		}
		p.logger.Info("Applied migration", "version", m.Version, "name", m.Name, "up", m.Up)
	}
	return nil
}

func (p *SQLProvider) applyMigration(ctx context.Context, m Migration) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}

	if m.Up {
		_, err = tx.ExecContext(ctx, p.db.Rebind(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`), m.Version, time.Now().UTC())
	} else {
		_, err = tx.ExecContext(ctx, p.db.Rebind(`DELETE FROM schema_migrations WHERE version = ?`), m.Version)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}
