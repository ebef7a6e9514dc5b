package nonce

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"visitor-pass-console/internal/storage"
	"visitor-pass-console/internal/store"
)

// KeyRevokedTokens is the slot holding persisted nonces.
const KeyRevokedTokens = "revokedTokens"

// SlotNonceStore keeps nonces in a storage slot so they survive restarts.
// The slot maps each nonce to its expiry.
type SlotNonceStore struct {
	logger *slog.Logger
	slot   *store.Slot[map[string]time.Time]

	mu sync.Mutex
	*janitor
}

func NewSlotNonceStore(provider storage.Provider) *SlotNonceStore {
	return &SlotNonceStore{
		logger:  slog.With("component", "SlotNonceStore"),
		slot:    store.NewSlot[map[string]time.Time](provider, KeyRevokedTokens),
		janitor: newJanitor(),
	}
}

// update runs fn over the stored entries and writes them back.
func (s *SlotNonceStore) update(ctx context.Context, fn func(entries map[string]time.Time)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.slot.Load(ctx, nil)
	if entries == nil {
		entries = make(map[string]time.Time)
	}
	fn(entries)
	return s.slot.Write(ctx, entries)
}

func (s *SlotNonceStore) Put(ctx context.Context, nonce string, ttl time.Duration) error {
	if ttl <= 0 {
		return errNonPositiveTTL
	}
	expiry := time.Now().Add(ttl)
	return s.update(ctx, func(entries map[string]time.Time) {
		entries[nonce] = expiry
	})
}

func (s *SlotNonceStore) Exists(ctx context.Context, nonce string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.slot.Load(ctx, nil)[nonce]
	return ok && !time.Now().After(exp)
}

func (s *SlotNonceStore) ExpireNonces(ctx context.Context) error {
	now := time.Now()
	return s.update(ctx, func(entries map[string]time.Time) {
		for k, exp := range entries {
			if now.After(exp) {
				delete(entries, k)
			}
		}
	})
}
