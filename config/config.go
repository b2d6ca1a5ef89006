package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type AppConfig struct {
	Port         string
	Timezone     string
	DatabaseURL  string
	DBPath       string
	SupabaseURL  string
	SupabaseKey  string
	SiteURL      string
	AuthTimeout  time.Duration
	LogLevel     string
	CookieSecure bool
}

// Load reads .env (if present) and the process environment. A missing or
// unreadable .env is reported as envErr alongside a usable config; it runs
// before the logger exists, so the caller decides how to report it.
func Load() (cfg AppConfig, envErr error) {
	if err := godotenv.Load(); err != nil {
		envErr = fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv), envErr
}

// FromEnv builds the config from a lookup function so tests can feed a map.
func FromEnv(getenv func(string) string) AppConfig {
	get := func(def string, keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				return v
			}
		}
		return def
	}
	timeout, err := time.ParseDuration(get("5s", "AUTH_TIMEOUT"))
	if err != nil || timeout <= 0 {
		timeout = 5 * time.Second
	}
	port := get("8080", "PORT")
	cfg := AppConfig{
		Port:         port,
		Timezone:     get("UTC", "TZ"),
		DatabaseURL:  get("", "DATABASE_URL"),
		DBPath:       get("pacemaker.db", "DB_PATH"),
		SupabaseURL:  strings.TrimRight(get("", "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"), "/"),
		SupabaseKey:  get("", "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"),
		SiteURL:      strings.TrimRight(get("http://localhost:"+port, "SITE_URL"), "/"),
		AuthTimeout:  timeout,
		LogLevel:     strings.ToLower(get("info", "LOG_LEVEL")),
		CookieSecure: get("false", "COOKIE_SECURE") == "true",
	}
	return cfg
}

// SetupRequired reports whether the auth provider connection parameters are missing.
func (c AppConfig) SetupRequired() bool {
	return c.SupabaseURL == "" || c.SupabaseKey == ""
}

// Location resolves Timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		zap.S().Warnw("[cfg] unknown timezone, using UTC", "tz", c.Timezone, "err", err)
		return time.UTC
	}
	return loc
}

// Redacted is safe to log: the anon key and database URL are masked.
func (c AppConfig) Redacted() AppConfig {
	out := c
	if out.SupabaseKey != "" {
		out.SupabaseKey = "***"
	}
	if out.DatabaseURL != "" {
		out.DatabaseURL = "***"
	}
	return out
}
