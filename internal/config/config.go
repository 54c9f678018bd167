package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig gathers the settings needed to run the service.
type AppConfig struct {
	ListenAddr         string
	Port               string
	DatabaseDriver     string
	DatabasePath       string
	DatabaseURL        string
	SessionSecret      string
	GinMode            string
	LogLevel           string
	CatalogCacheTTL    time.Duration
	MinimumAge         int
	RecommendationSeed uint64
	SeedUserEmail      string
	SeedUserPassword   string
}

// defaults is the only place fallback values live. Blank or whitespace-only
// variables resolve to these.
var defaults = map[string]any{
	"PORT":                "8080",
	"DATABASE_DRIVER":     "sqlite",
	"DATABASE_PATH":       "greencart.db",
	"SESSION_SECRET":      "greencart-dev-secret",
	"GIN_MODE":            "release",
	"LOG_LEVEL":           "info",
	"CATALOG_CACHE_TTL":   5 * time.Minute,
	"MINIMUM_AGE":         20,
	"RECOMMENDATION_SEED": uint64(0),
}

// Load reads the configuration from environment variables, falling back to
// safe defaults for anything unset.
func Load() AppConfig {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	port := stringOrDefault(v, "PORT")

	listenAddr := trimmed(v, "LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	driver := strings.ToLower(stringOrDefault(v, "DATABASE_DRIVER"))
	if driver != "postgres" {
		driver = "sqlite"
	}

	ttl := v.GetDuration("CATALOG_CACHE_TTL")
	if ttl <= 0 {
		ttl = defaults["CATALOG_CACHE_TTL"].(time.Duration)
	}

	minimumAge := v.GetInt("MINIMUM_AGE")
	if minimumAge <= 0 {
		minimumAge = defaults["MINIMUM_AGE"].(int)
	}

	return AppConfig{
		ListenAddr:         listenAddr,
		Port:               port,
		DatabaseDriver:     driver,
		DatabasePath:       stringOrDefault(v, "DATABASE_PATH"),
		DatabaseURL:        trimmed(v, "DATABASE_URL"),
		SessionSecret:      stringOrDefault(v, "SESSION_SECRET"),
		GinMode:            stringOrDefault(v, "GIN_MODE"),
		LogLevel:           strings.ToLower(stringOrDefault(v, "LOG_LEVEL")),
		CatalogCacheTTL:    ttl,
		MinimumAge:         minimumAge,
		RecommendationSeed: v.GetUint64("RECOMMENDATION_SEED"),
		SeedUserEmail:      trimmed(v, "SEED_USER_EMAIL"),
		SeedUserPassword:   trimmed(v, "SEED_USER_PASSWORD"),
	}
}

func trimmed(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}

// stringOrDefault treats a whitespace-only value as unset.
func stringOrDefault(v *viper.Viper, key string) string {
	if value := trimmed(v, key); value != "" {
		return value
	}
	return fmt.Sprint(defaults[key])
}
