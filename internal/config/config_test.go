package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("APP_ENV", "")
	t.Setenv("EVENTS_BACKEND", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "s3cret", cfg.Auth.SessionSecret)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, int64(5<<20), cfg.Uploads.MaxBytes)
	assert.Equal(t, "none", cfg.Events.Backend)
	assert.False(t, cfg.Auth.SecureCookie)
	assert.True(t, cfg.Mongo.Migrate)
}

func TestLoadFallsBackToJWTSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("JWT_SECRET", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Auth.SessionSecret)
}

func TestLoadRejectsUnknownEventsBackend(t *testing.T) {
	t.Setenv("SESSION_SECRET", "x")
	t.Setenv("EVENTS_BACKEND", "carrier-pigeon")

	_, err := Load()
	require.Error(t, err)
}

func TestProductionEnablesSecureCookie(t *testing.T) {
	t.Setenv("SESSION_SECRET", "x")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_COOKIE_SECURE", "")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Auth.SecureCookie)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.KafkaBrokers)
}

func TestRateLimitConfigClampsValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	rl := LoadRateLimitConfig()
	assert.Equal(t, 1, rl.Capacity)
	assert.Equal(t, 5*time.Second, rl.TTL)
}

func TestCacheConfigMethods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")

	cc := LoadCacheConfig()
	assert.True(t, cc.Methods["GET"])
	assert.True(t, cc.Methods["HEAD"])
	assert.False(t, cc.Methods["POST"])
}
