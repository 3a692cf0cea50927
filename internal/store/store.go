// Package store persists event records in a single SQLite table via GORM.
// The schema is created idempotently at process start; the handle is opened
// once and shared for the process lifetime.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lagunalabs/sucesos/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// StorageError wraps a failure of the underlying medium or a schema
// violation. Surfaced to the user as-is; never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// Open connects to the SQLite database at path, creating the parent
// directory if needed, and runs the schema migration. AutoMigrate is
// idempotent, so calling this on every startup is safe.
func Open(path string, logger *slog.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	if err := db.AutoMigrate(&domain.Event{}); err != nil {
		return nil, &StorageError{Op: "migrate", Err: err}
	}

	logger.Info("database ready", "path", path)
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return &StorageError{Op: "close", Err: err}
	}
	if err := sqlDB.Close(); err != nil {
		return &StorageError{Op: "close", Err: err}
	}
	return nil
}
