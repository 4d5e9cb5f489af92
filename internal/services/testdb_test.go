package services_test

import (
	"fmt"
	"testing"

	"github.com/jhasonu12/creator-store-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh named in-memory SQLite database for one test.
// The name keeps tests isolated from each other while cache=shared keeps the
// database alive across connections within the test. TranslateError makes
// unique-constraint violations surface as gorm.ErrDuplicatedKey, matching
// production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.CreatorProfile{},
		&models.StoreSlug{},
		&models.Store{},
		&models.StoreTheme{},
		&models.StoreSection{},
		&models.StorePage{},
		&models.PageBlock{},
		&models.Product{},
		&models.RefreshToken{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}
