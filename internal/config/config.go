package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  string
	DatabaseURL string
	RedisURL    string
	LogLevel    string

	Auth struct {
		JWTSecret          string
		AccessTokenTTL     time.Duration
		RefreshTokenTTL    time.Duration
		CookieSecure       bool
		LoginRatePerMinute int
	}

	// Seed creates the first admin when both are set and no admin exists.
	Seed struct {
		AdminUsername string
		AdminPassword string
		AdminEmail    string
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "ims-geartech"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	var err error
	if cfg.Auth.AccessTokenTTL, err = getDuration("ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Auth.RefreshTokenTTL, err = getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Auth.CookieSecure, err = getBool("COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.Auth.LoginRatePerMinute, err = getInt("LOGIN_RATE_PER_MINUTE", 10); err != nil {
		return nil, err
	}
	if cfg.Auth.LoginRatePerMinute < 1 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MINUTE must be at least 1")
	}

	cfg.Seed.AdminUsername = os.Getenv("ADMIN_USERNAME")
	cfg.Seed.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.Seed.AdminEmail = getEnv("ADMIN_EMAIL", "admin@bsgeartech.local")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, value, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q: %w", key, value, err)
	}
	return b, nil
}
