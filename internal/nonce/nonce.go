// Package nonce records token identifiers for a limited time. The console
// uses it to remember the ids of session tokens revoked by logout.
package nonce

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"visitor-pass-console/internal/storage"
)

type NonceStoreType string

// Supported nonce stores.
const (
	Memory  NonceStoreType = "memory"
	Storage NonceStoreType = "storage"
)

// DefaultJanitorInterval is how often expired entries are pruned.
const DefaultJanitorInterval = time.Minute

type NonceStoreInterface interface {
	// Put stores a nonce with a TTL.
	Put(ctx context.Context, nonce string, ttl time.Duration) error

	Exists(ctx context.Context, nonce string) bool

	ExpireNonces(ctx context.Context) error

	// Close stops the background janitor.
	Close()
}

// NewStore builds the store of the given type and starts its janitor.
func NewStore(typ NonceStoreType, provider storage.Provider, interval time.Duration) (NonceStoreInterface, error) {
	switch typ {
	case Memory, "":
		s := NewMemoryStore()
		go s.run(interval, s.ExpireNonces, s.logger)
		return s, nil
	case Storage:
		s := NewSlotNonceStore(provider)
		go s.run(interval, s.ExpireNonces, s.logger)
		return s, nil
	}
	return nil, fmt.Errorf("unknown store type %q", typ)
}

// janitor calls expire on a ticker until Close.
type janitor struct {
	stop chan struct{}
	once sync.Once
}

func newJanitor() *janitor {
	return &janitor{stop: make(chan struct{})}
}

func (j *janitor) run(interval time.Duration, expire func(context.Context) error, logger *slog.Logger) {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := expire(context.Background()); err != nil {
				logger.Error("Failed to expire nonces", "error", err)
			}
		case <-j.stop:
			return
		}
	}
}

// Close stops the janitor. It is safe to call more than once.
func (j *janitor) Close() {
	j.once.Do(func() { close(j.stop) })
}
