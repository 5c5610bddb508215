package store

import (
	internalstore "github.com/witherkv/wither/internal/store"
)

// Store is an expiring key/value store bound to a single backend.
type Store = internalstore.Store

// Config configures a Store; it is fixed at construction time.
type Config = internalstore.Config

// Mode selects which scoped backend of an Environment backs a store.
type Mode = internalstore.Mode

// Environment is the injected host capability: one backend per scope.
type Environment = internalstore.Environment

// ValidationError reports a malformed caller-supplied argument.
type ValidationError = internalstore.ValidationError

// EnvironmentError reports a missing backend capability.
type EnvironmentError = internalstore.EnvironmentError

const (
	ModeSession = internalstore.ModeSession
	ModeLocal   = internalstore.ModeLocal
)

// New constructs a Store over the backend selected by cfg.Mode.
func New(env *Environment, cfg Config) (*Store, error) {
	return internalstore.New(env, cfg)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	return internalstore.IsValidationError(err)
}

// IsEnvironmentError reports whether err is (or wraps) an EnvironmentError.
func IsEnvironmentError(err error) bool {
	return internalstore.IsEnvironmentError(err)
}
