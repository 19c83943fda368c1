// Package databasetest opens migrated SQLite databases for tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/innovatefest/hackathon-api/internal/database"
)

// New returns a migrated database in a temporary directory. It is closed
// when the test ends.
func New(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}
