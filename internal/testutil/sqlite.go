// Package testutil opens throwaway in-memory databases for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/infrastructure/database"
	"github.com/sangkips/bytechef-api/internal/infrastructure/repository"
	"github.com/sangkips/bytechef-api/pkg/clock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive and
	// serializes writers.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db, zaptest.NewLogger(t)))
	return db
}

// NewSeededDB is NewDB plus the default catalog.
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	require.NoError(t, database.SeedDefaultData(context.Background(), repository.NewProductRepository(db), zaptest.NewLogger(t)))
	return db
}

// Noon is a whole-second instant in the middle of a UTC business day.
func Noon(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// NewClock returns a fixed clock at noon UTC on 2024-05-10.
func NewClock() *clock.Fixed {
	return &clock.Fixed{At: Noon(2024, time.May, 10)}
}
