package backend

import (
	"context"
	"testing"
)

func TestRedisBackend_PrefixIsolatesClear(t *testing.T) {
	b, cleanup := newRedisBackendForTest(t)
	defer cleanup()

	ctx := context.Background()

	// Plant a key outside the backend's prefix directly on the client.
	if err := b.client.Set(ctx, "unrelated-key", "keep", 0).Err(); err != nil {
		t.Fatalf("planting unrelated key: %v", err)
	}

	if err := b.Set(ctx, "mine", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := b.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	ok, err := b.Has(ctx, "mine")
	if err != nil {
		t.Fatalf("Has() error = %v", err)
	}
	if ok {
		t.Fatal("prefixed key should be gone after Clear")
	}

	n, err := b.client.Exists(ctx, "unrelated-key").Result()
	if err != nil {
		t.Fatalf("checking unrelated key: %v", err)
	}
	if n != 1 {
		t.Fatal("Clear should not touch keys outside the prefix")
	}
}

func TestRedisBackend_ClusterClearDeletesPerKey(t *testing.T) {
	b, cleanup := newRedisBackendForTest(t)
	defer cleanup()

	// Per-key deletion works against any deployment; flipping the flag
	// exercises the path Clear takes when batching is not allowed.
	b.cluster = true

	ctx := context.Background()
	for _, key := range []string{"a", "b", "c"} {
		if err := b.Set(ctx, key, "v"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if err := b.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	for _, key := range []string{"a", "b", "c"} {
		ok, err := b.Has(ctx, key)
		if err != nil {
			t.Fatalf("Has() error = %v", err)
		}
		if ok {
			t.Fatalf("key %q should be gone after Clear", key)
		}
	}
}

func TestRedisBackend_ConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  *RedisConfig
	}{
		{name: "nil config", cfg: nil},
		{name: "missing host", cfg: &RedisConfig{Port: 6379}},
		{name: "bad port", cfg: &RedisConfig{Host: "localhost", Port: 0}},
		{name: "cluster without nodes", cfg: &RedisConfig{Cluster: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := normalizeRedisConfig(tt.cfg); err == nil {
				t.Errorf("normalizeRedisConfig(%+v) expected error", tt.cfg)
			}
		})
	}
}

func TestRedisBackend_NoServerSideTTL(t *testing.T) {
	b, cleanup := newRedisBackendForTest(t)
	defer cleanup()

	ctx := context.Background()
	if err := b.Set(ctx, "ttl-check", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	ttl, err := b.client.TTL(ctx, b.prefix+"ttl-check").Result()
	if err != nil {
		t.Fatalf("TTL() error = %v", err)
	}
	if ttl > 0 {
		t.Fatalf("entry should have no server-side TTL, got %v", ttl)
	}
}
