package options

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shorty/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.Option{}); err != nil {
		t.Fatalf("migrate options: %v", err)
	}
	return New(db)
}

func TestGetMissingOption(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	value, ok, err := store.Get(context.Background(), models.OptionActiveTheme)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || value != "" {
		t.Fatalf("Get() = %q, %t; want empty and missing", value, ok)
	}
}

func TestUpdateCreatesThenOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Update(ctx, models.OptionActiveTheme, "minimal"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := store.Update(ctx, models.OptionActiveTheme, "midnight"); err != nil {
		t.Fatalf("second Update() error = %v", err)
	}

	value, ok, err := store.Get(ctx, models.OptionActiveTheme)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || value != "midnight" {
		t.Fatalf("Get() = %q, %t; want midnight", value, ok)
	}

	var count int64
	if err := store.db.Model(&models.Option{}).Count(&count).Error; err != nil {
		t.Fatalf("count options: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single option row, got %d", count)
	}
}

func TestUpdateStoresEmptyValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Update(ctx, models.OptionActiveTheme, ""); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	value, ok, err := store.Get(ctx, models.OptionActiveTheme)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || value != "" {
		t.Fatalf("Get() = %q, %t; want present and empty", value, ok)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Update(ctx, "custom", "1"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := store.Delete(ctx, "custom"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := store.Get(ctx, "custom"); ok {
		t.Fatal("expected option to be removed")
	}
	if err := store.Delete(ctx, "custom"); err != nil {
		t.Fatalf("Delete() of missing option error = %v", err)
	}
}

func TestRejectsBlankNames(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Update(context.Background(), "  ", "x"); err == nil {
		t.Fatal("expected error for blank option name")
	}
	if _, _, err := store.Get(context.Background(), ""); err == nil {
		t.Fatal("expected error for blank option name")
	}
}

func TestNilStore(t *testing.T) {
	t.Parallel()

	var store *Store
	if _, _, err := store.Get(context.Background(), "x"); err == nil {
		t.Fatal("expected error from nil store")
	}
}
