// Package dbtest opens in-memory SQLite databases for adapter and usecase tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront_backend/internal/platform/db"
)

// Open returns a fresh in-memory database with models migrated.
// プールは1接続に固定します。:memory: は接続ごとに別DBになるためです。
func Open(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig())
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb, models...), "failed to migrate tables")
	t.Cleanup(func() { _ = sqlDB.Close() })

	return gdb
}
