// Package store manages the embedded SQLite record store: its lifecycle,
// schema migrations, default seed data, and change notifications.
package store

import (
	"fmt"

	"moneta/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Collection names of the four persisted record sets.
const (
	CollectionTransactions = "transactions"
	CollectionCategories   = "categories"
	CollectionTags         = "tags"
	CollectionSettings     = "settings"
)

// Store is the handle to the record store. All reads and writes go through
// the GORM connection it owns; mutations announce themselves on the hub.
type Store struct {
	db   *gorm.DB
	hub  *Hub
	path string
}

// Open opens (creating if necessary) the SQLite database file at path.
func Open(path string) (*Store, error) {
	dsn := path + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	return &Store{db: db, hub: NewHub(), path: path}, nil
}

// OpenDSN opens a store with a raw SQLite DSN. Tests use this with isolated
// named in-memory databases; such stores cannot run file migrations.
func OpenDSN(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	return &Store{db: db, hub: NewHub()}, nil
}

// Migrate applies pending SQL migrations from the given directory.
func (s *Store) Migrate(dir string) error {
	if s.path == "" {
		return fmt.Errorf("cannot run file migrations on an in-memory store")
	}

	logger.Get().Info("Running record store migrations...")

	mig, err := migrate.New("file://"+dir, "sqlite3://"+s.path)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Record store migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Hub returns the change-notification hub for this store.
func (s *Store) Hub() *Hub {
	return s.hub
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}
	return sqlDB.Close()
}
