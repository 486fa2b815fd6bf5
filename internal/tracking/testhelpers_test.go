package tracking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nerrad567/grouptrail/internal/infrastructure/database"
	_ "github.com/nerrad567/grouptrail/migrations"
)

// setupTestDB opens a migrated in-memory database.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{Path: database.MemoryPath, BusyTimeout: 1})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	require.NoError(t, db.Migrate(ctx))
	return db
}

func setupTestRepo(t *testing.T) (*SQLiteRepository, *database.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewSQLiteRepository(db.DB), db
}
