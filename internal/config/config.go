package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port     string
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     []string
}

// DatabaseConfig contains connection and pool settings.
type DatabaseConfig struct {
	Driver      string // "pgx" or "sqlite3"
	URL         string
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// AuthConfig contains token and password hashing settings.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// Load reads configuration from the environment. DATABASE_URL and JWT_SECRET
// have no defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getenv("PORT", "5000"),
		Database: DatabaseConfig{
			Driver: getenv("DB_DRIVER", "pgx"),
			URL:    getenv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getenv("JWT_SECRET", ""),
		},
		CORS: splitList(getenv("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.Database.MaxOpen, err = getenvInt("DB_MAX_OPEN", 10); err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdle, err = getenvInt("DB_MAX_IDLE", 10); err != nil {
		return nil, err
	}
	lifetime, err := getenvInt("DB_MAX_LIFETIME", 300) // seconds
	if err != nil {
		return nil, err
	}
	cfg.Database.MaxLifetime = time.Duration(lifetime) * time.Second

	if cfg.Auth.BcryptCost, err = getenvInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.Auth.TokenTTL, err = ParseTTL(getenv("TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	switch cfg.Database.Driver {
	case "pgx", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// ParseTTL parses durations such as "15m", "1h", "20s". A bare number is
// read as minutes.
func ParseTTL(ttlStr string) (time.Duration, error) {
	if ttlStr == "" {
		return 24 * time.Hour, nil
	}

	if strings.HasSuffix(ttlStr, "m") ||
		strings.HasSuffix(ttlStr, "h") ||
		strings.HasSuffix(ttlStr, "s") {
		return time.ParseDuration(ttlStr)
	}

	min, err := strconv.Atoi(ttlStr)
	if err != nil {
		return 0, err
	}
	return time.Duration(min) * time.Minute, nil
}

// String returns a printable form of the config with the secret masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DB: %s, Pool: %d/%d, TokenTTL: %s, Auth: *** (masked) ***}",
		c.Port, c.Database.Driver, c.Database.MaxOpen, c.Database.MaxIdle, c.Auth.TokenTTL)
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
