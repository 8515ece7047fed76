package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_PORT", "DB_STRING", "APP_ENV", "API_BASE_URL", "API_TIMEOUT", "SESSION_KEY",
		"COOKIE_SECURE", "KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_GROUP_ID", "DRAFT_IDLE_TTL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP_PORT)
	assert.Equal(t, "http://localhost:5000/api", cfg.API_BASE_URL)
	assert.Equal(t, "placed-orders", cfg.KAFKA_TOPIC)
	assert.Equal(t, 2*time.Hour, cfg.DRAFT_IDLE_TTL)
	assert.Zero(t, cfg.API_TIMEOUT)
	assert.False(t, cfg.KafkaEnabled())
	assert.NotEmpty(t, cfg.SESSION_KEY)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "https://api.example.com/api/")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("KAFKA_BROKERS", "k1:9092")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/api", cfg.API_BASE_URL)
	assert.Equal(t, 5*time.Second, cfg.API_TIMEOUT)
	assert.True(t, cfg.KafkaEnabled())
	assert.True(t, cfg.COOKIE_SECURE)
}

func TestLoadConfigRejects(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "eighty")
	_, err := LoadConfig()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("DRAFT_IDLE_TTL", "forever")
	_, err = LoadConfig()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	_, err = LoadConfig()
	assert.Error(t, err, "production needs a session key")

	t.Setenv("SESSION_KEY", "short")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("SESSION_KEY", "0123456789abcdef0123456789abcdef")
	_, err = LoadConfig()
	assert.NoError(t, err)
}
