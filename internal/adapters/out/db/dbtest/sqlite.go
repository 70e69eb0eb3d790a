// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lanor-Jephthah1/gurlhub/internal/infra/database"
)

// MemoryDSN is a private in-memory SQLite database. It lives as long as its single connection.
const MemoryDSN = "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite"

// NewSQLite returns a migrated in-memory SQLite database closed at test cleanup.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()

	conn, err := database.NewConnection(ctx, "sqlite", MemoryDSN, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, database.Migrate(ctx, conn.Client, "sqlite"))
	return conn.Client
}
