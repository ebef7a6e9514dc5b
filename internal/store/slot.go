// Package store binds named storage slots to typed in-memory values.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"visitor-pass-console/internal/storage"
)

// Slot keys.
const (
	KeyVisitors    = "visitors"
	KeyEmployees   = "employees"
	KeyBuildings   = "buildings"
	KeyOperators   = "operators"
	KeyCurrentUser = "currentUser"
)

// Slot reads and writes a value of type T as JSON in one provider slot.
// Every write replaces the whole slot.
type Slot[T any] struct {
	key      string
	provider storage.Provider
	logger   *slog.Logger
}

func NewSlot[T any](provider storage.Provider, key string) *Slot[T] {
	return &Slot[T]{
		key:      key,
		provider: provider,
		logger:   slog.With("component", "store", "slot", key),
	}
}

// Load returns the stored value. A missing slot, a read error or contents
// that do not decode all yield fallback; failures are logged, not returned.
func (s *Slot[T]) Load(ctx context.Context, fallback T) T {
	data, err := s.provider.Get(ctx, s.key)
	if errors.Is(err, storage.ErrSlotNotFound) {
		return fallback
	}
	if err != nil {
		s.logger.Error("Failed to read slot", "error", err)
		return fallback
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Warn("Discarding unreadable slot contents", "error", err)
		return fallback
	}
	return value
}

// Exists reports whether the slot has ever been written.
func (s *Slot[T]) Exists(ctx context.Context) bool {
	_, err := s.provider.Get(ctx, s.key)
	if err != nil && !errors.Is(err, storage.ErrSlotNotFound) {
		s.logger.Error("Failed to read slot", "error", err)
		// A slot that failed to read counts as present, seed data must not replace it.
		return true
	}
	return err == nil
}

// Write replaces the slot contents with value. The error is logged and
// returned; callers keep their in-memory value either way.
func (s *Slot[T]) Write(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("Failed to encode slot", "error", err)
		return fmt.Errorf("encode slot %s: %w", s.key, err)
	}
	if err := s.provider.Put(ctx, s.key, data); err != nil {
		s.logger.Error("Failed to write slot", "error", err)
		return fmt.Errorf("write slot %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the slot.
func (s *Slot[T]) Clear(ctx context.Context) error {
	if err := s.provider.Remove(ctx, s.key); err != nil {
		s.logger.Error("Failed to clear slot", "error", err)
		return fmt.Errorf("clear slot %s: %w", s.key, err)
	}
	return nil
}
