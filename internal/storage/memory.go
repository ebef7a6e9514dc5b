package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryProvider keeps slots in process memory. Contents are lost on exit.
type MemoryProvider struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{slots: make(map[string][]byte)}
}

func (m *MemoryProvider) Close() error { return nil }

func (m *MemoryProvider) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryProvider) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryProvider) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

func (m *MemoryProvider) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.slots))
	for k := range m.slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
