package nonce

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var errNonPositiveTTL = errors.New("ttl must be > 0")

// MemoryStore keeps nonces for the lifetime of the process.
type MemoryStore struct {
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	expiries map[string]time.Time
	*janitor
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		logger:   slog.With("component", "MemoryNonceStore"),
		now:      time.Now,
		expiries: make(map[string]time.Time),
		janitor:  newJanitor(),
	}
}

func (m *MemoryStore) Put(ctx context.Context, nonce string, ttl time.Duration) error {
	if ttl <= 0 {
		return errNonPositiveTTL
	}
	m.mu.Lock()
	m.expiries[nonce] = m.now().Add(ttl)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Exists(ctx context.Context, nonce string) bool {
	m.mu.RLock()
	expiry, ok := m.expiries[nonce]
	m.mu.RUnlock()
	return ok && !m.now().After(expiry)
}

func (m *MemoryStore) ExpireNonces(ctx context.Context) error {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for nonce, expiry := range m.expiries {
		if now.After(expiry) {
			delete(m.expiries, nonce)
		}
	}
	m.logger.Debug("Expired nonces pruned", "remaining", len(m.expiries))
	return nil
}
