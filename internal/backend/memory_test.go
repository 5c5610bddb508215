package backend

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryBackend_Len(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	if got := b.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}

	if err := b.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := b.Set(ctx, "b", "2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := b.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	if err := b.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := b.Len(); got != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", got)
	}
}

func TestMemoryBackend_ConcurrentAccess(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			if err := b.Set(ctx, key, "v"); err != nil {
				t.Errorf("Set() error = %v", err)
			}
			if _, _, err := b.Get(ctx, key); err != nil {
				t.Errorf("Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := b.Len(); got != 20 {
		t.Fatalf("Len() = %d, want 20", got)
	}
}
