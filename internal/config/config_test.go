package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LISTEN_ADDR", "DATABASE_DRIVER", "DATABASE_PATH", "SESSION_SECRET", "CATALOG_CACHE_TTL", "MINIMUM_AGE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabasePath != "greencart.db" {
		t.Fatalf("unexpected database defaults: %s %s", cfg.DatabaseDriver, cfg.DatabasePath)
	}
	if cfg.CatalogCacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m cache ttl, got %s", cfg.CatalogCacheTTL)
	}
	if cfg.MinimumAge != 20 {
		t.Fatalf("expected minimum age 20, got %d", cfg.MinimumAge)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/greencart")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("MINIMUM_AGE", "21")
	t.Setenv("RECOMMENDATION_SEED", "42")

	cfg := Load()

	if cfg.ListenAddr != ":9090" {
		t.Fatalf("expected listen addr derived from port, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Fatalf("expected postgres driver, got %q", cfg.DatabaseDriver)
	}
	if cfg.CatalogCacheTTL != 30*time.Second {
		t.Fatalf("expected 30s ttl, got %s", cfg.CatalogCacheTTL)
	}
	if cfg.MinimumAge != 21 || cfg.RecommendationSeed != 42 {
		t.Fatalf("unexpected age/seed: %d %d", cfg.MinimumAge, cfg.RecommendationSeed)
	}
}

func TestLoadTreatsBlankValuesAsUnset(t *testing.T) {
	t.Setenv("PORT", "   ")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_PATH", " ")
	t.Setenv("GIN_MODE", "\t")
	t.Setenv("CATALOG_CACHE_TTL", "not-a-duration")
	t.Setenv("MINIMUM_AGE", "-3")

	cfg := Load()

	if cfg.Port != "8080" || cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default port, got %q %q", cfg.Port, cfg.ListenAddr)
	}
	if cfg.DatabasePath != "greencart.db" || cfg.GinMode != "release" {
		t.Fatalf("expected defaults for blank values, got %q %q", cfg.DatabasePath, cfg.GinMode)
	}
	if cfg.CatalogCacheTTL != 5*time.Minute || cfg.MinimumAge != 20 {
		t.Fatalf("expected defaults for invalid values, got %s %d", cfg.CatalogCacheTTL, cfg.MinimumAge)
	}
}
