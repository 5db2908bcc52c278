// Package typeddbtest provides helpers for tests that need a typeddb.DB.
package typeddbtest

import (
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db/engines/pebble"
	"github.com/ValentinKolb/tKV/lib/typeddb"
)

// OpenTestDB opens a pebble backed DB in a fresh temporary directory. The DB is
// closed when the test finishes.
func OpenTestDB(t testing.TB) *typeddb.DB {
	t.Helper()

	database, err := typeddb.Open(
		filepath.Join(t.TempDir(), "db"),
		typeddb.WithEngine(typeddb.PebbleEngine(&pebble.Options{Sync: false})),
	)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("failed to close test db: %v", err)
		}
	})
	return database
}

// WithTestDB runs fn with a DB opened by OpenTestDB
func WithTestDB(t testing.TB, fn func(database *typeddb.DB)) {
	t.Helper()
	fn(OpenTestDB(t))
}
