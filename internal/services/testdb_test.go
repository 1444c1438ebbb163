package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/hearthstack/household-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. A single
// connection keeps sqlite from hitting lock contention under the
// processor's concurrent sync.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Household{},
		&models.User{},
		&models.Tool{},
		&models.Subscription{},
		&models.BillingActive{},
		&models.BillingHistory{},
		&models.Setting{},
		&models.CalendarEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}
