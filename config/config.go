package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the process reads from the environment.
// Secrets are loaded once at startup and handed to constructors explicitly.
type Config struct {
	MongoURI       string
	DatabaseName   string
	Port           string
	AccessSecret   string
	RefreshSecret  string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	AllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		MongoURI:      os.Getenv("MONGODB_URI"),
		DatabaseName:  os.Getenv("DATABASE_NAME"),
		Port:          os.Getenv("PORT"),
		AccessSecret:  os.Getenv("JWT_SECRET"),
		RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTTL:     accessTTL(),
		RefreshTTL:    refreshTTL(),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	if cfg.DatabaseName == "" {
		cfg.DatabaseName = "goblog"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// Access tokens are deliberately short-lived: there is no server-side
// revocation for them, so the expiry window is the whole staleness bound.
func accessTTL() time.Duration {
	secStr := os.Getenv("ACCESS_TOKEN_TTL_SECONDS")
	sec, _ := strconv.Atoi(secStr)
	if sec <= 0 {
		sec = 30
	}
	return time.Duration(sec) * time.Second
}

func refreshTTL() time.Duration {
	dStr := os.Getenv("REFRESH_TOKEN_TTL_DAYS")
	days, _ := strconv.Atoi(dStr)
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}
