package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process-wide connection used by the command line entry points.
var DB *gorm.DB

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Models lists every table managed by AutoMigrate.
func Models() []any {
	return []any{
		&User{},
		&PaymentMethod{},
		&Strain{},
		&Favorite{},
		&Order{},
		&OrderItem{},
		&DiaryEntry{},
		&Review{},
	}
}

// Open connects to the database. For sqlite dsn is a file path (empty falls
// back to greencart.db); for postgres it is a connection URL.
func Open(driver, dsn string, log logger.Interface) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if log != nil {
		cfg.Logger = log
	}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverPostgres:
		if strings.TrimSpace(dsn) == "" {
			return nil, errors.New("postgres requires DATABASE_URL")
		}
		return gorm.Open(postgres.Open(dsn), cfg)
	case "", DriverSQLite:
		path := strings.TrimSpace(dsn)
		if path == "" {
			path = "greencart.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		return gorm.Open(sqlite.Open(path), cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Init opens the database, runs the migrations and stores the handle in DB.
func Init(driver, dsn string, log logger.Interface) error {
	gdb, err := Open(driver, dsn, log)
	if err != nil {
		return err
	}
	if err := Migrate(gdb); err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Migrate creates or updates the schema.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
