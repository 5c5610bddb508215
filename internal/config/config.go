package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/witherkv/wither/internal/backend"
	"github.com/witherkv/wither/internal/store"
)

// Backend type names accepted in config files and CLI flags.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config is the top-level configuration for the wither CLI and server.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Store   StoreConfig   `json:"store"`
	Backend BackendConfig `json:"backend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// StoreConfig holds the expiring store settings.
type StoreConfig struct {
	Mode    string        `json:"mode"`
	Timeout time.Duration `json:"timeout"`
}

// BackendConfig selects and configures the local-scope backend. The
// session scope is always memory-backed.
type BackendConfig struct {
	Type   string              `json:"type"`
	File   FileBackendConfig   `json:"file"`
	SQLite SQLiteBackendConfig `json:"sqlite"`
	Redis  backend.RedisConfig `json:"redis"`
}

// FileBackendConfig configures the file backend.
type FileBackendConfig struct {
	Path string `json:"path"`
}

// SQLiteBackendConfig configures the SQLite backend.
type SQLiteBackendConfig struct {
	Path string `json:"path"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Store: StoreConfig{
			Mode:    string(store.ModeLocal),
			Timeout: 0,
		},
		Backend: BackendConfig{
			Type: BackendFile,
			File: FileBackendConfig{
				Path: backend.DefaultFilePath(),
			},
			Redis: backend.RedisConfig{
				Host:        "localhost",
				Port:        6379,
				PoolSize:    20,
				MaxRetries:  3,
				DialTimeout: 5 * time.Second,
			},
		},
	}
}

// Validate checks that the config is valid.
func (c Config) Validate() error {
	switch store.Mode(c.Store.Mode) {
	case store.ModeSession, store.ModeLocal:
	default:
		return fmt.Errorf("unknown store mode %q, must be one of: session, local", c.Store.Mode)
	}
	if c.Store.Timeout < 0 {
		return fmt.Errorf("store timeout must not be negative, got %s", c.Store.Timeout)
	}

	switch c.Backend.Type {
	case BackendMemory, BackendRedis:
	case BackendFile:
		if c.Backend.File.Path == "" {
			return fmt.Errorf("backend.file.path is required for the file backend")
		}
	case BackendSQLite:
		if c.Backend.SQLite.Path == "" {
			return fmt.Errorf("backend.sqlite.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown backend %q, must be one of: memory, file, redis, sqlite", c.Backend.Type)
	}
	return nil
}

// LoadFile reads a JSON config file and merges it with defaults.
// Fields not specified in the file retain their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	// Use a raw intermediate struct to handle duration parsing.
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	if raw.Server.Addr != "" {
		cfg.Server.Addr = raw.Server.Addr
	}
	if raw.Store.Mode != "" {
		cfg.Store.Mode = raw.Store.Mode
	}
	if raw.Store.Timeout != "" {
		d, err := time.ParseDuration(raw.Store.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("parsing store.timeout: %w", err)
		}
		cfg.Store.Timeout = d
	}
	if raw.Backend.Type != "" {
		cfg.Backend.Type = raw.Backend.Type
	}
	if raw.Backend.File.Path != "" {
		cfg.Backend.File.Path = raw.Backend.File.Path
	}
	if raw.Backend.SQLite.Path != "" {
		cfg.Backend.SQLite.Path = raw.Backend.SQLite.Path
	}
	if raw.Backend.Redis.Host != "" {
		cfg.Backend.Redis.Host = raw.Backend.Redis.Host
	}
	if raw.Backend.Redis.Port > 0 {
		cfg.Backend.Redis.Port = raw.Backend.Redis.Port
	}
	if raw.Backend.Redis.Password != "" {
		cfg.Backend.Redis.Password = raw.Backend.Redis.Password
	}
	if raw.Backend.Redis.DB > 0 {
		cfg.Backend.Redis.DB = raw.Backend.Redis.DB
	}
	if raw.Backend.Redis.Prefix != "" {
		cfg.Backend.Redis.Prefix = raw.Backend.Redis.Prefix
	}
	if raw.Backend.Redis.DialTimeout != "" {
		d, err := time.ParseDuration(raw.Backend.Redis.DialTimeout)
		if err != nil {
			return cfg, fmt.Errorf("parsing backend.redis.dial_timeout: %w", err)
		}
		cfg.Backend.Redis.DialTimeout = d
	}

	return cfg, nil
}

// rawConfig is the JSON-friendly representation with string durations.
type rawConfig struct {
	Server struct {
		Addr string `json:"addr"`
	} `json:"server"`
	Store struct {
		Mode    string `json:"mode"`
		Timeout string `json:"timeout"`
	} `json:"store"`
	Backend struct {
		Type string `json:"type"`
		File struct {
			Path string `json:"path"`
		} `json:"file"`
		SQLite struct {
			Path string `json:"path"`
		} `json:"sqlite"`
		Redis struct {
			Host        string `json:"host"`
			Port        int    `json:"port"`
			Password    string `json:"password"`
			DB          int    `json:"db"`
			Prefix      string `json:"prefix"`
			DialTimeout string `json:"dial_timeout"`
		} `json:"redis"`
	} `json:"backend"`
}

// WriteExample writes an example config file to the given path.
func WriteExample(path string) error {
	example := `{
  "server": {
    "addr": ":8080"
  },
  "store": {
    "mode": "local",
    "timeout": "24h"
  },
  "backend": {
    "type": "file",
    "file": {
      "path": "wither.json"
    }
  }
}
`
	return os.WriteFile(path, []byte(example), 0o644)
}
