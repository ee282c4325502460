package database

import (
	"path/filepath"
	"testing"

	"github.com/docshare/filesystem/internal/config"
	"github.com/docshare/filesystem/internal/models"
	"github.com/google/uuid"
)

func TestConnect(t *testing.T) {
	t.Run("sqlite driver migrates contents table", func(t *testing.T) {
		db, err := Connect(config.DBConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "filesystem.db"),
		})
		if err != nil {
			t.Fatalf("expected connect to succeed, got %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			t.Fatalf("failed getting sql.DB: %v", err)
		}
		t.Cleanup(func() { _ = sqlDB.Close() })

		if !db.Migrator().HasTable(&models.Content{}) {
			t.Fatal("expected contents table to exist")
		}
		if !db.Migrator().HasIndex(&models.Content{}, "idx_contents_path_customer") {
			t.Fatal("expected path/customer unique index to exist")
		}
	})

	t.Run("second root for a customer is rejected", func(t *testing.T) {
		db, err := Connect(config.DBConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "filesystem.db"),
		})
		if err != nil {
			t.Fatalf("expected connect to succeed, got %v", err)
		}
		sqlDB, _ := db.DB()
		t.Cleanup(func() { _ = sqlDB.Close() })

		customerID := uuid.New()
		first := models.Content{CustomerID: customerID, Name: models.RootName, Path: models.RootName}
		if err := db.Create(&first).Error; err != nil {
			t.Fatalf("expected first root insert to succeed, got %v", err)
		}
		second := models.Content{CustomerID: customerID, Name: "Other", Path: "Other"}
		if err := db.Create(&second).Error; err == nil {
			t.Fatal("expected second root insert to fail")
		}

		otherTenant := models.Content{CustomerID: uuid.New(), Name: models.RootName, Path: models.RootName}
		if err := db.Create(&otherTenant).Error; err != nil {
			t.Fatalf("expected other tenant root insert to succeed, got %v", err)
		}
	})

	t.Run("unknown driver fails", func(t *testing.T) {
		if _, err := Connect(config.DBConfig{Driver: "oracle"}); err == nil {
			t.Fatal("expected unsupported driver error")
		}
	})
}
