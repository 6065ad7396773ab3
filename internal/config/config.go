package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort        = "8080"
	defaultDatabaseURL = "inspectdesk.db"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultJWTTTL      = "24h"
	defaultUploadDir   = "uploads"
	defaultWeekStart   = "sunday"
)

// Config is the runtime configuration of the API server, read from the
// environment once at startup.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	UploadDir   string
	// WeekStart is the first-day-of-week convention used by the weekly flow
	// report buckets.
	WeekStart time.Weekday
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))

	ttlRaw := strings.TrimSpace(getEnv("JWT_TTL", defaultJWTTTL))
	ttl, err := time.ParseDuration(ttlRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL value %q: %w", ttlRaw, err)
	}
	cfg.JWTTTL = ttl

	weekStart, err := parseWeekday(getEnv("WEEK_START", defaultWeekStart))
	if err != nil {
		return nil, err
	}
	cfg.WeekStart = weekStart

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func parseWeekday(v string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	default:
		return 0, fmt.Errorf("WEEK_START must be sunday or monday, got %q", v)
	}
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
