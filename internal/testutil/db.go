// Package testutil provides test helpers for store-backed tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"strata/internal/artifact"
	"strata/internal/infrastructure/sqlite"
)

// NewTestDB creates a migrated store database under a test temp directory.
// The database is closed automatically when the test ends.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// NewTestStore creates a migrated artifact store for tests.
func NewTestStore(t *testing.T) artifact.Store {
	t.Helper()
	return NewTestDB(t).ArtifactStore()
}
