package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"visitor-pass-console/internal/storage"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// failingProvider wraps a provider and fails selected operations.
type failingProvider struct {
	storage.Provider
	failGet bool
	failPut bool
}

var errUnavailable = errors.New("storage unavailable")

func (f *failingProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet {
		return nil, errUnavailable
	}
	return f.Provider.Get(ctx, key)
}

func (f *failingProvider) Put(ctx context.Context, key string, data []byte) error {
	if f.failPut {
		return errUnavailable
	}
	return f.Provider.Put(ctx, key, data)
}

func TestSlotLoadFallbackOnMissing(t *testing.T) {
	slot := NewSlot[[]record](storage.NewMemoryProvider(), KeyVisitors)
	fallback := []record{{ID: "seed"}}

	got := slot.Load(context.Background(), fallback)
	if !reflect.DeepEqual(got, fallback) {
		t.Errorf("expected fallback, got %v", got)
	}
	if slot.Exists(context.Background()) {
		t.Error("fresh slot should not exist")
	}
}

func TestSlotLoadFallbackOnCorruptData(t *testing.T) {
	ctx := context.Background()
	p := storage.NewMemoryProvider()
	p.Put(ctx, KeyVisitors, []byte(`{not json`))

	slot := NewSlot[[]record](p, KeyVisitors)
	got := slot.Load(ctx, nil)
	if got != nil {
		t.Errorf("expected nil fallback for corrupt data, got %v", got)
	}
	if !slot.Exists(ctx) {
		t.Error("corrupt slot still exists")
	}
}

func TestSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := NewSlot[[]record](storage.NewMemoryProvider(), KeyEmployees)

	want := []record{{ID: "1", Name: "Petrova"}, {ID: "2", Name: "Sidorov"}}
	if err := slot.Write(ctx, want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got := slot.Load(ctx, nil); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if err := slot.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if slot.Exists(ctx) {
		t.Error("cleared slot should not exist")
	}
}

func TestSlotWriteFailureIsReported(t *testing.T) {
	ctx := context.Background()
	p := &failingProvider{Provider: storage.NewMemoryProvider()}
	slot := NewSlot[[]record](p, KeyBuildings)

	if err := slot.Write(ctx, []record{{ID: "1"}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	p.failPut = true
	if err := slot.Write(ctx, []record{{ID: "1"}, {ID: "2"}}); !errors.Is(err, errUnavailable) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}

	p.failPut = false
	if got := slot.Load(ctx, nil); len(got) != 1 {
		t.Errorf("expected previous contents after a failed write, got %v", got)
	}
}

func TestSlotReadFailure(t *testing.T) {
	ctx := context.Background()
	p := &failingProvider{Provider: storage.NewMemoryProvider(), failGet: true}
	slot := NewSlot[[]record](p, KeyOperators)

	if got := slot.Load(ctx, []record{{ID: "fallback"}}); len(got) != 1 || got[0].ID != "fallback" {
		t.Errorf("expected fallback on read failure, got %v", got)
	}
	if !slot.Exists(ctx) {
		t.Error("unreadable slot must count as present")
	}
}
