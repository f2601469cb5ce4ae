// Package testutil provides an in-memory SQLite database with the Requests
// table migrated, for repository and handler tests.
package testutil

import (
	"testing"

	"bloodbank-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Every :memory: connection is a separate database, so pin the pool to one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.BloodRequest{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func StrPtr(s string) *string {
	return &s
}
