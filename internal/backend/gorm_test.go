package backend

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	b, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("NewSQLiteBackend() error = %v", err)
	}
	if err := b.Set(ctx, "greeting", "hello"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reopened, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("NewSQLiteBackend() reopen error = %v", err)
	}
	v, ok, err := reopened.Get(ctx, "greeting")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || v != "hello" {
		t.Fatalf("Get() after reopen = %q, %v, want %q, true", v, ok, "hello")
	}
}

func TestSQLiteBackend_EmptyPathRejected(t *testing.T) {
	if _, err := NewSQLiteBackend(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestGormBackend_NilHandleRejected(t *testing.T) {
	if _, err := NewGormBackend(nil); err == nil {
		t.Fatal("expected error for nil gorm handle")
	}
}
