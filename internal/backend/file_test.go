package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackend_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	b, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	if err := b.Set(ctx, "greeting", "hello"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reopened, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() reopen error = %v", err)
	}
	v, ok, err := reopened.Get(ctx, "greeting")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || v != "hello" {
		t.Fatalf("Get() after reopen = %q, %v, want %q, true", v, ok, "hello")
	}
}

func TestFileBackend_CreatesParentDirectory(t *testing.T) {
	// The default local store path lives under a per-user directory that
	// may not exist yet; the first write must create it.
	path := filepath.Join(t.TempDir(), "wither", "local.json")
	ctx := context.Background()

	b, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	if err := b.Set(ctx, "greeting", "hello"); err != nil {
		t.Fatalf("Set() through missing directory error = %v", err)
	}

	reopened, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() reopen error = %v", err)
	}
	v, ok, err := reopened.Get(ctx, "greeting")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || v != "hello" {
		t.Fatalf("Get() after reopen = %q, %v, want %q, true", v, ok, "hello")
	}
}

func TestFileBackend_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	b, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}

	ok, err := b.Has(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Has() error = %v", err)
	}
	if ok {
		t.Fatal("new backend should be empty")
	}
}

func TestFileBackend_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	if _, err := NewFileBackend(path); err == nil {
		t.Fatal("expected error opening corrupt store file")
	}
}

func TestFileBackend_EmptyPathRejected(t *testing.T) {
	if _, err := NewFileBackend(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestFileBackend_RemovePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	b, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	if err := b.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := b.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	reopened, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() reopen error = %v", err)
	}
	ok, err := reopened.Has(ctx, "k")
	if err != nil {
		t.Fatalf("Has() error = %v", err)
	}
	if ok {
		t.Fatal("removed key should not survive reopen")
	}
}
