package main

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/bcf-portal/internal/orders"
	"github.com/angelmondragon/bcf-portal/pkg/config"
)

func TestHistoryStoreFollowsPersistFlag(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "bcf.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if _, ok := historyStore(config.FeatureFlagsConfig{UseSQLite: true}, conn).(*orders.MemoryHistory); !ok {
		t.Fatal("expected memory history when only sqlite is enabled")
	}
	if _, ok := historyStore(config.FeatureFlagsConfig{UseSQLite: true, PersistOrders: true}, conn).(*orders.Repository); !ok {
		t.Fatal("expected gorm history when persistence is enabled")
	}
	if _, ok := historyStore(config.FeatureFlagsConfig{PersistOrders: true}, nil).(*orders.MemoryHistory); !ok {
		t.Fatal("expected memory history without a connection")
	}
}
