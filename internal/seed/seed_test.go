package seed

import (
	"testing"
	"time"

	"github.com/greencart/internal/db"
	"github.com/greencart/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestParseCatalog(t *testing.T) {
	strains, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog returned error: %v", err)
	}
	if len(strains) < 4 {
		t.Fatalf("expected bundled strains, got %d", len(strains))
	}
	if strains[0].Name != "OG Kush" || strains[0].THCMax != 24 || strains[0].Price != 650 {
		t.Fatalf("unexpected first strain: %+v", strains[0])
	}

	if _, err := ParseCatalog([]byte("strains: []")); err == nil {
		t.Fatal("expected error for empty catalog")
	}
	if _, err := ParseCatalog([]byte("strains:\n  - type: Indica\n")); err == nil {
		t.Fatal("expected error for nameless strain")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file:seed-apply?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	catalog := service.NewCatalogService(gdb, time.Minute, nil)
	opts := Options{UserEmail: "demo@greencart.test", UserPassword: "demo-pass"}

	first, err := Apply(gdb, catalog, opts, nil)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if _, err := Apply(gdb, catalog, opts, nil); err != nil {
		t.Fatalf("second Apply returned error: %v", err)
	}

	var strainCount, userCount int64
	gdb.Model(&db.Strain{}).Count(&strainCount)
	gdb.Model(&db.User{}).Count(&userCount)
	if int(strainCount) != first {
		t.Fatalf("expected %d strains after re-seed, got %d", first, strainCount)
	}
	if userCount != 1 {
		t.Fatalf("expected one demo user, got %d", userCount)
	}
}
