package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application. The target ratio lives
// here and is injected into the service layer; the core takes it as a plain
// parameter.
type Config struct {
	AppEnv         string
	HTTPPort       int
	RedisAddr      string
	TargetRatio    float64
	CacheTTL       time.Duration
	MaxUploadBytes int64
}

// LoadFromEnv loads configuration from environment variables, falling back to
// defaults on absent or unparseable values.
func LoadFromEnv() *Config {
	port, err := strconv.Atoi(getEnv("HTTP_PORT", "8080"))
	if err != nil {
		port = 8080
	}

	target, err := strconv.ParseFloat(getEnv("SLA_TARGET_RATIO", "0.87"), 64)
	if err != nil || target <= 0 || target >= 1 {
		target = 0.87
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil || ttl <= 0 {
		ttl = 10 * time.Minute
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "16777216"), 10, 64)
	if err != nil || maxUpload <= 0 {
		maxUpload = 16 << 20
	}

	return &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		HTTPPort:       port,
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		TargetRatio:    target,
		CacheTTL:       ttl,
		MaxUploadBytes: maxUpload,
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
