// Package dbtest opens isolated, migrated in-memory databases for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"beondiet/internal/db"
)

var seq atomic.Int64

// Open returns a fresh sqlite database private to tb. The pool is pinned to a
// single connection so the in-memory database lives as long as the handle and
// transactions serialize the way they would against one writer.
func Open(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:beondiet-test-%d?mode=memory&cache=shared", seq.Add(1))
	opts := db.Options(logger.Silent)
	opts.PrepareStmt = false

	database, err := gorm.Open(sqlite.Open(dsn), opts)
	if err != nil {
		tb.Fatalf("open sqlite database: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		tb.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database); err != nil {
		tb.Fatalf("migrate schema: %v", err)
	}

	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}
