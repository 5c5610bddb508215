package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/witherkv/wither/internal/config"
	"github.com/witherkv/wither/pkg/backend"
	"github.com/witherkv/wither/pkg/store"
)

// storeOptions holds the flags shared by every command that opens a store.
// Flag values override config file values only when explicitly set.
type storeOptions struct {
	configPath string

	mode           string
	defaultTimeout time.Duration

	backendType string
	filePath    string
	sqlitePath  string

	redisHost        string
	redisPort        int
	redisPassword    string
	redisDB          int
	redisPrefix      string
	redisDialTimeout time.Duration
}

func (o *storeOptions) addFlags(cmd *cobra.Command) {
	defaults := config.Default()

	cmd.Flags().StringVar(&o.configPath, "config", "", "path to a JSON config file")
	cmd.Flags().StringVar(&o.mode, "mode", defaults.Store.Mode, "store scope (session, local)")
	cmd.Flags().DurationVar(&o.defaultTimeout, "default-timeout", 0, "global expiry for entries without their own timeout (0 = never)")
	cmd.Flags().StringVar(&o.backendType, "backend", defaults.Backend.Type, "local-scope backend (memory, file, redis, sqlite)")
	cmd.Flags().StringVar(&o.filePath, "file-path", defaults.Backend.File.Path, "path of the JSON store file")
	cmd.Flags().StringVar(&o.sqlitePath, "sqlite-path", "", "path of the SQLite database")
	cmd.Flags().StringVar(&o.redisHost, "redis-host", defaults.Backend.Redis.Host, "redis host")
	cmd.Flags().IntVar(&o.redisPort, "redis-port", defaults.Backend.Redis.Port, "redis port")
	cmd.Flags().StringVar(&o.redisPassword, "redis-password", "", "redis password")
	cmd.Flags().IntVar(&o.redisDB, "redis-db", 0, "redis database index")
	cmd.Flags().StringVar(&o.redisPrefix, "redis-prefix", "", "redis key prefix")
	cmd.Flags().DurationVar(&o.redisDialTimeout, "redis-dial-timeout", defaults.Backend.Redis.DialTimeout, "redis dial timeout")
}

// resolve merges defaults, config file, and changed flags into a Config.
func (o *storeOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadFile(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Store.Mode = o.mode
	}
	if flags.Changed("default-timeout") {
		cfg.Store.Timeout = o.defaultTimeout
	}
	if flags.Changed("backend") {
		cfg.Backend.Type = o.backendType
	}
	if flags.Changed("file-path") {
		cfg.Backend.File.Path = o.filePath
	}
	if flags.Changed("sqlite-path") {
		cfg.Backend.SQLite.Path = o.sqlitePath
	}
	if flags.Changed("redis-host") {
		cfg.Backend.Redis.Host = o.redisHost
	}
	if flags.Changed("redis-port") {
		cfg.Backend.Redis.Port = o.redisPort
	}
	if flags.Changed("redis-password") {
		cfg.Backend.Redis.Password = o.redisPassword
	}
	if flags.Changed("redis-db") {
		cfg.Backend.Redis.DB = o.redisDB
	}
	if flags.Changed("redis-prefix") {
		cfg.Backend.Redis.Prefix = o.redisPrefix
	}
	if flags.Changed("redis-dial-timeout") {
		cfg.Backend.Redis.DialTimeout = o.redisDialTimeout
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openStore builds the storage environment described by cfg and binds a
// store to it. The returned cleanup releases backend resources.
func openStore(cfg config.Config) (*store.Store, func(), error) {
	cleanup := func() {}

	var local backend.Backend
	switch cfg.Backend.Type {
	case config.BackendMemory:
		local = backend.NewMemoryBackend()
	case config.BackendFile:
		b, err := backend.NewFileBackend(cfg.Backend.File.Path)
		if err != nil {
			return nil, cleanup, fmt.Errorf("opening file backend: %w", err)
		}
		local = b
	case config.BackendSQLite:
		b, err := backend.NewSQLiteBackend(cfg.Backend.SQLite.Path)
		if err != nil {
			return nil, cleanup, fmt.Errorf("opening sqlite backend: %w", err)
		}
		local = b
	case config.BackendRedis:
		b, err := backend.NewRedisBackend(&cfg.Backend.Redis)
		if err != nil {
			return nil, cleanup, fmt.Errorf("opening redis backend: %w", err)
		}
		cleanup = func() { _ = b.Close() }
		local = b
	default:
		return nil, cleanup, fmt.Errorf("unknown backend %q", cfg.Backend.Type)
	}

	env := &store.Environment{
		Session: backend.NewMemoryBackend(),
		Local:   local,
	}
	st, err := store.New(env, store.Config{
		Mode:    store.Mode(cfg.Store.Mode),
		Timeout: cfg.Store.Timeout,
	})
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return st, cleanup, nil
}
