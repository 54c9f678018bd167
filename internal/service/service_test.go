package service

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/greencart/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", testDBCounter.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

func seedStrains(t *testing.T, gdb *gorm.DB, strains ...db.Strain) []db.Strain {
	t.Helper()
	for i := range strains {
		if err := gdb.Create(&strains[i]).Error; err != nil {
			t.Fatalf("failed to seed strain %s: %v", strains[i].Name, err)
		}
	}
	return strains
}

func seedUser(t *testing.T, gdb *gorm.DB, email string) db.User {
	t.Helper()
	user := db.User{Email: email, Password: "x", DisplayName: email}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := string(RenderMarkdown("**smooth** <script>alert(1)</script>"))
	if out == "" {
		t.Fatal("expected rendered html")
	}
	if want := "<strong>smooth</strong>"; !strings.Contains(out, want) {
		t.Fatalf("expected %q in %q", want, out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("script tag survived sanitizing: %q", out)
	}
	if RenderMarkdown("   ") != "" {
		t.Fatal("expected empty output for blank input")
	}
}
