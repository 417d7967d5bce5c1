// Package testutil provides test helpers for setting up isolated in-memory
// record stores, creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"moneta/internal/models"
	"moneta/internal/store"
)

// dbCounter gives each test its own named in-memory database. Settings is
// a singleton and category names are unique, so tests must never share a
// store.
var dbCounter atomic.Int64

// SetupTestStore creates an isolated in-memory record store with all
// tables migrated. The store is closed automatically when the test ends.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	st, err := store.OpenDSN(dsn)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	tables := []interface{}{
		&models.Transaction{},
		&models.Category{},
		&models.Tag{},
		&models.Settings{},
	}
	if err := st.DB().AutoMigrate(tables...); err != nil {
		t.Fatalf("failed to migrate test store: %v", err)
	}

	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("failed to close test store: %v", err)
		}
	})
	return st
}
