// Package store implements an expiring key/value store on top of a raw
// backend. Every entry is wrapped in a JSON envelope carrying its write
// timestamp and an optional per-entry timeout; expiry is evaluated lazily
// on read, and expired entries are evicted as a side effect of that read.
// There is no background sweeping: an entry that is never read again stays
// in the backend indefinitely.
package store

import (
	"context"
	"time"

	"github.com/witherkv/wither/internal/backend"
	"github.com/witherkv/wither/internal/clock"
)

// Mode selects which scoped backend of an Environment backs a store.
type Mode string

const (
	// ModeSession binds the store to the session-scoped backend, whose
	// contents live as long as the process.
	ModeSession Mode = "session"
	// ModeLocal binds the store to the local-scoped backend, whose
	// contents persist across restarts.
	ModeLocal Mode = "local"
)

// Environment is the injected host capability: one backend per scope.
// Either slot may be nil if the host does not provide that scope.
type Environment struct {
	Session backend.Backend
	Local   backend.Backend
}

// Config configures a Store. It is fixed at construction time.
type Config struct {
	// Mode selects the backing scope. Required.
	Mode Mode
	// Timeout is the global default expiry applied to entries that carry
	// no per-entry timeout. Zero means entries never expire by default.
	Timeout time.Duration
	// Clock overrides the time source. Defaults to the real clock.
	Clock clock.Clock
}

// Store is an expiring key/value store bound to a single backend. It
// holds no mutable state beyond the backend handle; instances are
// independent and safe for concurrent use if their backend is.
type Store struct {
	backend backend.Backend
	timeout time.Duration
	clock   clock.Clock
}

// New constructs a Store over the backend selected by cfg.Mode.
// It returns an EnvironmentError when the environment or the selected
// backend is missing, and a ValidationError for a bad mode or timeout.
// No entries are created or touched.
func New(env *Environment, cfg Config) (*Store, error) {
	if env == nil {
		return nil, environmentErrorf("no storage environment provided")
	}
	if cfg.Timeout < 0 {
		return nil, validationErrorf("timeout must not be negative, got %s", cfg.Timeout)
	}

	var b backend.Backend
	switch cfg.Mode {
	case ModeSession:
		b = env.Session
	case ModeLocal:
		b = env.Local
	default:
		return nil, validationErrorf("unknown mode %q, must be %q or %q", cfg.Mode, ModeSession, ModeLocal)
	}
	if b == nil {
		return nil, environmentErrorf("environment provides no %s backend", cfg.Mode)
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}

	return &Store{
		backend: b,
		timeout: cfg.Timeout,
		clock:   clk,
	}, nil
}

// Has reports whether a raw entry exists for key. It checks existence
// only: an expired entry that has not been evicted yet still reports true.
func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	return s.backend.Has(ctx, key)
}

// Set writes value under key with no per-entry timeout. The store's
// global timeout, if any, still applies on read.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	return s.set(ctx, key, value, 0)
}

// SetWithTimeout writes value under key with a per-entry timeout that
// overrides the store's global default.
func (s *Store) SetWithTimeout(ctx context.Context, key string, value any, timeout time.Duration) error {
	if timeout < 0 {
		return validationErrorf("timeout must not be negative, got %s", timeout)
	}
	return s.set(ctx, key, value, timeout)
}

func (s *Store) set(ctx context.Context, key string, value any, timeout time.Duration) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := validateValue(value); err != nil {
		return err
	}

	raw, err := encodeEnvelope(s.clock.Now(), value, timeout)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, key, raw)
}

// Get returns the payload stored under key, or nil when the key is
// absent, its entry does not decode, or it has expired. An expired entry
// is evicted from the backend before nil is returned.
//
// Values round-trip through JSON, so numbers come back as float64 and
// objects as map[string]any.
func (s *Store) Get(ctx context.Context, key string) (any, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	env, ok := decodeEnvelope(raw)
	if !ok {
		return nil, nil
	}

	// Entries without a timestamp predate the envelope format (or were
	// inserted by hand); serve them without any expiry check.
	if env.Timestamp == nil {
		return env.Data, nil
	}

	elapsed := s.clock.Now().UnixMilli() - *env.Timestamp
	expired := false
	if env.Timeout > 0 {
		// The per-entry timeout always wins over the global default.
		expired = elapsed >= env.Timeout
	} else if s.timeout > 0 {
		expired = elapsed >= s.timeout.Milliseconds()
	}

	if expired {
		if err := s.backend.Remove(ctx, key); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return env.Data, nil
}

// Remove deletes the entry for key. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return s.backend.Remove(ctx, key)
}

// Change applies fn to the current value (nil when absent or expired)
// and writes the result back. The rewritten entry carries no per-entry
// timeout, even if the previous one did. If fn returns an error it is
// propagated and nothing is written.
func (s *Store) Change(ctx context.Context, key string, fn func(current any) (any, error)) error {
	if fn == nil {
		return validationErrorf("change function is required")
	}

	current, err := s.Get(ctx, key)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, next)
}

// Clear removes every entry from the bound backend.
func (s *Store) Clear(ctx context.Context) error {
	return s.backend.Clear(ctx)
}

// Timeout returns the configured global default expiry (zero if none).
func (s *Store) Timeout() time.Duration {
	return s.timeout
}
