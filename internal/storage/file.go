package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const slotFileExt = ".json"

// FileProvider stores each slot as <dir>/<key>.json. Writes go to a temp
// file which is renamed over the target, so a crash never leaves a torn slot.
type FileProvider struct {
	dir    string
	mu     sync.Mutex
	logger *slog.Logger
}

func NewFileProvider(dir string) (*FileProvider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileProvider{
		dir:    dir,
		logger: slog.With("component", "storage", "backend", "file"),
	}, nil
}

func (p *FileProvider) Close() error { return nil }

func (p *FileProvider) path(key string) string {
	return filepath.Join(p.dir, key+slotFileExt)
}

func (p *FileProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSlotNotFound
	}
	return data, err
}

func (p *FileProvider) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	tmp, err := os.CreateTemp(p.dir, "."+key+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, p.path(key)); err != nil {
		os.Remove(tmpName)
		return err
	}
	p.logger.Debug("Slot written", "key", key, "bytes", len(data))
	return nil
}

func (p *FileProvider) Remove(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	err := os.Remove(p.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (p *FileProvider) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != slotFileExt {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, slotFileExt))
	}
	sort.Strings(keys)
	return keys, nil
}
