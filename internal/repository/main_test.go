package repository

import (
	"fmt"
	"testing"
	"time"

	"weave/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Connection{},
		&models.Follow{},
		&models.Invitation{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// createUser persists a user with a unique username derived from name.
func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username:    name,
		Email:       fmt.Sprintf("%s_%d@example.com", name, time.Now().UnixNano()),
		DisplayName: name,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}
