package backend

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormBackend is a Backend persisted in a SQL database through GORM.
// It ships wired to SQLite for single-file local persistence, but works
// with any *gorm.DB via NewGormBackend.
type GormBackend struct {
	db *gorm.DB
}

// entry is the table layout: one row per raw key/value pair.
type entry struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value string
}

// NewGormBackend wraps an existing GORM handle, creating the entries
// table if it does not exist.
func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db handle is required")
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrating entries table: %w", err)
	}
	return &GormBackend{db: db}, nil
}

// NewSQLiteBackend opens (or creates) a SQLite database at path and
// returns a GormBackend over it.
func NewSQLiteBackend(path string) (*GormBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite backend path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", path, err)
	}
	return NewGormBackend(db)
}

func (b *GormBackend) Has(ctx context.Context, key string) (bool, error) {
	var n int64
	tx := b.db.WithContext(ctx).Model(&entry{}).Where("key = ?", key).Count(&n)
	if tx.Error != nil {
		return false, fmt.Errorf("counting entry: %w", tx.Error)
	}
	return n > 0, nil
}

func (b *GormBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var e entry
	tx := b.db.WithContext(ctx).Where("key = ?", key).Limit(1).Find(&e)
	if tx.Error != nil {
		return "", false, fmt.Errorf("loading entry: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return "", false, nil
	}
	return e.Value, true, nil
}

func (b *GormBackend) Set(ctx context.Context, key, value string) error {
	var e entry
	tx := b.db.WithContext(ctx).
		Where(entry{Key: key}).
		Assign(entry{Value: value}).
		FirstOrCreate(&e)
	if tx.Error != nil {
		return fmt.Errorf("storing entry: %w", tx.Error)
	}
	return nil
}

func (b *GormBackend) Remove(ctx context.Context, key string) error {
	tx := b.db.WithContext(ctx).Delete(&entry{}, "key = ?", key)
	if tx.Error != nil {
		return fmt.Errorf("deleting entry: %w", tx.Error)
	}
	return nil
}

func (b *GormBackend) Clear(ctx context.Context) error {
	tx := b.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entry{})
	if tx.Error != nil {
		return fmt.Errorf("clearing entries: %w", tx.Error)
	}
	return nil
}
