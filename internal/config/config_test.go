package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg := LoadFromEnv()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0.87, cfg.TargetRatio)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, int64(16<<20), cfg.MaxUploadBytes)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SLA_TARGET_RATIO", "0.9")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg := LoadFromEnv()

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 0.9, cfg.TargetRatio)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
}

func TestLoadFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	t.Setenv("SLA_TARGET_RATIO", "1.5")
	t.Setenv("CACHE_TTL", "soon")

	cfg := LoadFromEnv()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 0.87, cfg.TargetRatio)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}
