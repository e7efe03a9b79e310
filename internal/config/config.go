package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Fee record sources
const (
	SourceUpstream = "upstream"
	SourceDatabase = "database"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Fee records
	FeeSource       string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration

	// Database
	DatabaseURL string

	// JWT
	JWTSecret string

	// Storage
	StoragePath        string
	StatementRetention time.Duration

	// Background Workers
	WorkerCount      int
	BatchConcurrency int

	// CORS
	AllowedOrigins []string

	// Email (Resend)
	ResendAPIKey string
	FromEmail    string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		FeeSource:          strings.ToLower(getEnv("FEE_SOURCE", SourceUpstream)),
		UpstreamBaseURL:    strings.TrimRight(getEnv("UPSTREAM_BASE_URL", ""), "/"),
		UpstreamTimeout:    time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		StoragePath:        getEnv("STORAGE_PATH", "./storage"),
		StatementRetention: time.Duration(getEnvAsInt("STATEMENT_RETENTION_HOURS", 24)) * time.Hour,
		WorkerCount:        getEnvAsInt("WORKER_COUNT", 5),
		BatchConcurrency:   getEnvAsInt("BATCH_CONCURRENCY", 4),
		AllowedOrigins:     getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		FromEmail:          getEnv("FROM_EMAIL", "fees@studentportal.app"),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
	}

	// Validate required configuration
	switch cfg.FeeSource {
	case SourceUpstream:
		if cfg.UpstreamBaseURL == "" {
			return nil, fmt.Errorf("UPSTREAM_BASE_URL is required when FEE_SOURCE=%s", SourceUpstream)
		}
	case SourceDatabase:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when FEE_SOURCE=%s", SourceDatabase)
		}
	default:
		return nil, fmt.Errorf("unsupported FEE_SOURCE %q", cfg.FeeSource)
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = 1
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
