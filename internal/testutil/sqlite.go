// Package testutil provides shared helpers for tests that need a real database.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"magazine-db/internal/infra/db"
)

// NewSQLiteDB opens a private in-memory SQLite database with the schema
// applied. It is closed when the test finishes.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()

	sqlDB, err := db.Open(ctx, db.DriverSQLite, db.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.MigrateUp(ctx, sqlDB, db.DriverSQLite))
	return sqlDB
}

// CountRows returns the number of rows in table. table must be a trusted identifier.
func CountRows(t testing.TB, sqlDB *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, sqlDB.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
