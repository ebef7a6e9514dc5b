// Package collection keeps the console's ordered record lists in sync with
// their storage slots.
package collection

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/storage"
	"visitor-pass-console/internal/store"
)

var ErrNotFound = errors.New("record not found")

type options struct {
	clock Clock
	ids   IDGenerator
}

type Option func(*options)

func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

func buildOptions(opts []Option) options {
	o := options{clock: RealClock{}, ids: &TimestampIDs{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ClockOf returns the clock selected by opts.
func ClockOf(opts ...Option) Clock {
	return buildOptions(opts).clock
}

// Collection is an ordered list of records backed by one slot. The slot is
// read on first access; every mutation rewrites the whole slot. A failed
// write is logged and the in-memory list keeps the change.
type Collection[T model.Entity] struct {
	slot   *store.Slot[[]T]
	clock  Clock
	ids    IDGenerator
	seed   func() []T
	logger *slog.Logger

	mu     sync.Mutex
	items  []T
	loaded bool
}

func newCollection[T model.Entity](provider storage.Provider, key string, opts []Option) *Collection[T] {
	o := buildOptions(opts)
	return &Collection[T]{
		slot:   store.NewSlot[[]T](provider, key),
		clock:  o.clock,
		ids:    o.ids,
		logger: slog.With("component", "collection", "collection", key),
	}
}

// load must be called with mu held.
func (c *Collection[T]) load(ctx context.Context) {
	if c.loaded {
		return
	}
	c.loaded = true

	if c.seed != nil && !c.slot.Exists(ctx) {
		c.items = c.seed()
		c.logger.Info("Seeding collection", "count", len(c.items))
		c.persist(ctx)
		return
	}

	fallback := []T{}
	if c.seed != nil {
		fallback = c.seed()
	}
	c.items = c.slot.Load(ctx, fallback)
	if c.items == nil {
		c.items = []T{}
	}
}

// persist must be called with mu held.
func (c *Collection[T]) persist(ctx context.Context) {
	if err := c.slot.Write(ctx, c.items); err != nil {
		c.logger.Warn("Keeping unsaved changes in memory", "error", err)
	}
}

func (c *Collection[T]) index(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool { return item.GetID() == id })
}

// List returns a copy of the records in insertion order.
func (c *Collection[T]) List(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(ctx)
	return slices.Clone(c.items)
}

func (c *Collection[T]) Len(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(ctx)
	return len(c.items)
}

func (c *Collection[T]) Find(ctx context.Context, id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(ctx)
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Delete removes the record with id. It reports false when no record matched.
func (c *Collection[T]) Delete(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(ctx)

	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(slices.Clone(c.items), i, i+1)
	c.persist(ctx)
	return true
}

// add stamps a new identifier and creation time, appends the record built
// from them and persists.
func (c *Collection[T]) add(ctx context.Context, build func(id, createdAt string) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(ctx)

	now := c.clock.Now()
	id := c.ids.NewID(now)
	for c.index(id) >= 0 {
		id = c.ids.NewID(now)
	}

	item := build(id, model.FormatTimestamp(now))
	c.items = append(c.items, item)
	c.persist(ctx)
	return item
}

// update applies mutate to the record with id as a shallow merge. A mutation
// touching identity or creation time is dropped. It reports false, without
// writing, when no record matched.
func (c *Collection[T]) update(ctx context.Context, id string, mutate func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(ctx)

	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}

	item := c.items[i]
	mutate(&item)
	if item.GetID() != id || item.GetCreatedAt() != c.items[i].GetCreatedAt() {
		c.logger.Warn("Ignoring update to read-only fields", "id", id)
		return c.items[i], true
	}

	c.items[i] = item
	c.persist(ctx)
	return item, true
}
