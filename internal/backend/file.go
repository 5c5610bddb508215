package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend is a Backend persisted as a single JSON file on disk. It is
// the default backing for local-scoped stores: contents survive process
// restarts. The whole map is loaded at open time and rewritten on every
// mutation, which is fine for the small client-side data sets this is
// meant for.
type FileBackend struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

// NewFileBackend opens (or creates) a file-backed backend at path.
// A missing file is treated as an empty store; a file that exists but
// does not parse is an error, since silently discarding persisted data
// on open would be destructive.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("file backend path is required")
	}

	b := &FileBackend{
		path:  path,
		items: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return b, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return b, nil
	}
	if err := json.Unmarshal(data, &b.items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return b, nil
}

func (b *FileBackend) Has(_ context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.items[key]
	return ok, nil
}

func (b *FileBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.items[key]
	return v, ok, nil
}

func (b *FileBackend) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items[key] = value
	return b.flush()
}

func (b *FileBackend) Remove(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.items[key]; !ok {
		return nil
	}
	delete(b.items, key)
	return b.flush()
}

func (b *FileBackend) Clear(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = make(map[string]string)
	return b.flush()
}

// flush rewrites the backing file. Must be called with b.mu held.
// Writes go through a temp file plus rename so a crash mid-write cannot
// truncate previously persisted entries.
func (b *FileBackend) flush() error {
	data, err := json.MarshalIndent(b.items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store file: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replacing %s: %w", b.path, err)
	}
	return nil
}

// Path returns the location of the backing file.
func (b *FileBackend) Path() string {
	return b.path
}

// DefaultFilePath returns a per-user location for the local store file.
func DefaultFilePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "wither", "local.json")
}
