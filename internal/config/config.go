package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, resolved from the environment
type Config struct {
	HTTPAddr string
	DBPath   string
	LogLevel string

	CatalogBaseURL string
	CatalogTimeout time.Duration

	CountdownSeconds int
	YearStepEnabled  bool

	SessionMaxAge time.Duration
}

// Load reads .env if present, then resolves settings with defaults.
// Missing keys never fail; the defaults describe a local deployment.
func Load() Config {
	godotenv.Load()

	return Config{
		HTTPAddr: get("HTTP_ADDR", ":8081"),
		DBPath:   get("DB_PATH", "carage.db"),
		LogLevel: get("LOG_LEVEL", "info"),

		CatalogBaseURL: get("CATALOG_URL", "http://localhost:8000"),
		CatalogTimeout: getDuration("CATALOG_TIMEOUT", 10*time.Second),

		CountdownSeconds: getInt("OTP_COUNTDOWN_SECONDS", 30),
		YearStepEnabled:  getBool("YEAR_STEP_ENABLED", false),

		SessionMaxAge: getDuration("SESSION_MAX_AGE", 24*time.Hour),
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
