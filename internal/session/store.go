package session

import (
	"context"

	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/storage"
	"visitor-pass-console/internal/store"
)

// Store persists the signed-in operator between runs.
type Store interface {
	// Load returns nil when no operator is saved.
	Load(ctx context.Context) *model.Operator
	Save(ctx context.Context, op model.Operator) error
	Clear(ctx context.Context) error
}

// SlotStore keeps the session in the "currentUser" storage slot.
type SlotStore struct {
	slot *store.Slot[*model.Operator]
}

func NewSlotStore(provider storage.Provider) *SlotStore {
	return &SlotStore{slot: store.NewSlot[*model.Operator](provider, store.KeyCurrentUser)}
}

// Load clears a slot whose contents cannot be read back as an operator.
func (s *SlotStore) Load(ctx context.Context) *model.Operator {
	if !s.slot.Exists(ctx) {
		return nil
	}
	op := s.slot.Load(ctx, nil)
	if op == nil || op.ID == "" {
		s.slot.Clear(ctx)
		return nil
	}
	return op
}

func (s *SlotStore) Save(ctx context.Context, op model.Operator) error {
	return s.slot.Write(ctx, &op)
}

func (s *SlotStore) Clear(ctx context.Context) error {
	return s.slot.Clear(ctx)
}
