package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret     string
	CookieName string
	MaxAge     int
}

type RoutesConfig struct {
	// Post-login destination per role. The product has flip-flopped on the
	// non-admin target, so it stays configurable.
	AdminHome string
	UserHome  string
	Login     string
	Forbidden string
}

type UploadConfig struct {
	// MaxBytes is the ceiling for a questions CSV (5 MiB unless overridden).
	MaxBytes int64
}

type Config struct {
	ServerPort  string
	MetricsAddr string
	PprofAddr   string
	Backend     BackendConfig
	Session     SessionConfig
	Routes      RoutesConfig
	Upload      UploadConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8090"),
		MetricsAddr: getEnvOrDefault("METRICS_ADDR", ":9092"),
		PprofAddr:   getEnvOrDefault("PPROF_ADDR", ":6060"),
		Backend: BackendConfig{
			BaseURL: getEnvOrDefault("BACKEND_BASE_URL", "http://localhost:8080"),
			Timeout: getDurationOrDefault("BACKEND_TIMEOUT", 30*time.Second),
		},
		Session: SessionConfig{
			Secret:     os.Getenv("SESSION_SECRET"),
			CookieName: getEnvOrDefault("SESSION_COOKIE_NAME", "codesage_session"),
			MaxAge:     getIntOrDefault("SESSION_MAX_AGE", 86400),
		},
		Routes: RoutesConfig{
			AdminHome: getEnvOrDefault("ADMIN_HOME_ROUTE", "/platform"),
			UserHome:  getEnvOrDefault("USER_HOME_ROUTE", "/questions"),
			Login:     getEnvOrDefault("LOGIN_ROUTE", "/login"),
			Forbidden: getEnvOrDefault("FORBIDDEN_ROUTE", "/forbidden"),
		},
		Upload: UploadConfig{
			MaxBytes: getInt64OrDefault("UPLOAD_MAX_BYTES", 5*1024*1024),
		},
	}

	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
