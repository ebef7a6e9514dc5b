// Package storage persists named slots of serialized data. A slot is the
// durable counterpart of one in-memory collection or of the signed-in
// operator, addressed by a short key such as "visitors".
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"visitor-pass-console/internal/config"
)

var (
	ErrSlotNotFound   = errors.New("slot not found")
	ErrInvalidSlotKey = errors.New("invalid slot key")
)

var reSlotKey = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Provider is a durable key-value store of slot contents.
type Provider interface {
	Close() error

	// Get returns the raw contents of a slot or ErrSlotNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the contents of a slot atomically.
	Put(ctx context.Context, key string, data []byte) error
	// Remove deletes a slot. Removing a missing slot is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists every stored slot.
	Keys(ctx context.Context) ([]string, error)
}

func ValidateKey(key string) error {
	if !reSlotKey.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
	}
	return nil
}

// NewProvider opens the backend selected by cfg.Type.
func NewProvider(ctx context.Context, cfg *config.Storage) (Provider, error) {
	switch cfg.Type {
	case config.StorageMemory:
		return NewMemoryProvider(), nil
	case config.StorageFile:
		return NewFileProvider(cfg.File.Dir)
	case config.StorageSQLite:
		return NewSQLiteProvider(ctx, cfg.SQLite.Path)
	case config.StoragePostgres:
		return NewPostgresProvider(ctx, cfg.Postgres.DSN)
	case config.StorageBadger:
		return NewBadgerProvider(cfg.Badger.Dir)
	case config.StorageRedis:
		return NewRedisProvider(ctx, cfg.Redis)
	case config.StorageS3:
		return NewS3Provider(ctx, cfg.S3)
	}
	return nil, fmt.Errorf("unsupported storage type: %q", cfg.Type)
}
