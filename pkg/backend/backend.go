package backend

import (
	internalbackend "github.com/witherkv/wither/internal/backend"
	"gorm.io/gorm"
)

// Backend is the raw key/value capability an expiring store is built on.
type Backend = internalbackend.Backend

// MemoryBackend is a map-backed Backend.
type MemoryBackend = internalbackend.MemoryBackend

// FileBackend is a Backend persisted as a single JSON file on disk.
type FileBackend = internalbackend.FileBackend

// RedisBackend is a Redis-backed Backend.
type RedisBackend = internalbackend.RedisBackend

// RedisConfig configures the Redis backend.
type RedisConfig = internalbackend.RedisConfig

// GormBackend is a Backend persisted in a SQL database through GORM.
type GormBackend = internalbackend.GormBackend

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return internalbackend.NewMemoryBackend()
}

// NewFileBackend opens (or creates) a file-backed backend at path.
func NewFileBackend(path string) (*FileBackend, error) {
	return internalbackend.NewFileBackend(path)
}

// NewRedisBackend constructs a Redis backend and verifies connectivity.
func NewRedisBackend(cfg *RedisConfig) (*RedisBackend, error) {
	return internalbackend.NewRedisBackend(cfg)
}

// NewGormBackend wraps an existing GORM handle.
func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	return internalbackend.NewGormBackend(db)
}

// NewSQLiteBackend opens (or creates) a SQLite-backed backend at path.
func NewSQLiteBackend(path string) (*GormBackend, error) {
	return internalbackend.NewSQLiteBackend(path)
}
