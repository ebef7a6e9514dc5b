package storage

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

var badgerSlotPrefix = []byte("slot/")

// BadgerProvider keeps slots in an embedded badger database.
type BadgerProvider struct {
	db *badger.DB
}

// NewBadgerProvider opens dir, or an in-memory database when dir is empty.
func NewBadgerProvider(dir string) (*BadgerProvider, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return &BadgerProvider{db: db}, nil
}

func (p *BadgerProvider) Close() error {
	return p.db.Close()
}

func badgerKey(key string) []byte {
	return append(append([]byte(nil), badgerSlotPrefix...), key...)
}

func (p *BadgerProvider) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSlotNotFound
	}
	return data, err
}

func (p *BadgerProvider) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(key), data)
	})
}

func (p *BadgerProvider) Remove(ctx context.Context, key string) error {
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(key))
	})
}

func (p *BadgerProvider) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := p.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = badgerSlotPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(badgerSlotPrefix):]))
		}
		return nil
	})
	return keys, err
}
