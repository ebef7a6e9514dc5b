package nonce

import (
	"context"
	"testing"
	"time"

	"visitor-pass-console/internal/storage"
	"visitor-pass-console/internal/store"
)

func testStore(t *testing.T, s NonceStoreInterface) {
	t.Helper()
	ctx := context.Background()

	if s.Exists(ctx, "abc") {
		t.Fatal("unexpected nonce before Put")
	}
	if err := s.Put(ctx, "abc", time.Minute); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !s.Exists(ctx, "abc") {
		t.Error("expected nonce to exist")
	}
	if err := s.Put(ctx, "zero", 0); err == nil {
		t.Error("expected error for zero ttl")
	}
	if s.Exists(ctx, "zero") {
		t.Error("rejected nonce was stored")
	}

	if err := s.Put(ctx, "short", time.Millisecond); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if s.Exists(ctx, "short") {
		t.Error("expired nonce reported as existing")
	}
	if err := s.ExpireNonces(ctx); err != nil {
		t.Fatalf("ExpireNonces failed: %v", err)
	}
	if !s.Exists(ctx, "abc") {
		t.Error("ExpireNonces removed a live nonce")
	}
}

func TestMemoryStore(t *testing.T) {
	s, err := NewStore(Memory, nil, time.Hour)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestSlotNonceStore(t *testing.T) {
	p := storage.NewMemoryProvider()
	s, err := NewStore(Storage, p, time.Hour)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()
	testStore(t, s)

	entries := store.NewSlot[map[string]time.Time](p, KeyRevokedTokens).Load(context.Background(), nil)
	if _, ok := entries["short"]; ok {
		t.Error("expired nonce still persisted after ExpireNonces")
	}
	if _, ok := entries["abc"]; !ok {
		t.Error("live nonce missing from the slot")
	}
}

func TestSlotNonceStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	p := storage.NewMemoryProvider()

	first := NewSlotNonceStore(p)
	first.Put(ctx, "revoked", time.Hour)

	second := NewSlotNonceStore(p)
	if !second.Exists(ctx, "revoked") {
		t.Error("expected nonce to be visible to a new store on the same slot")
	}
}

func TestUnknownStoreType(t *testing.T) {
	if _, err := NewStore("redis", nil, time.Hour); err == nil {
		t.Error("expected error for unknown store type")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	m := NewMemoryStore()
	m.now = func() time.Time { return now }

	if err := m.Put(ctx, "jti", time.Minute); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	now = now.Add(2 * time.Minute)

	if m.Exists(ctx, "jti") {
		t.Error("expired nonce reported as existing")
	}
	m.ExpireNonces(ctx)
	if len(m.expiries) != 0 {
		t.Errorf("expected pruned store, have %v", m.expiries)
	}
	m.Close()
	m.Close()
}
