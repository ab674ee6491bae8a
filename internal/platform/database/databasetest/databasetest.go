// Package databasetest provides throwaway migrated databases for tests.
package databasetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndrewpacheco/warbler/internal/config"
	"github.com/ndrewpacheco/warbler/internal/logger"
	"github.com/ndrewpacheco/warbler/internal/platform/database"
)

// New returns a migrated in-memory sqlite database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:warbler-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.New(context.Background(), config.DriverSQLite, dsn, logger.Discard())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
