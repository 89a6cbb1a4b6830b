package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_QUERY_TIMEOUT", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.Equal(t, "NOTEBOOK_CHANGED", cfg.Events.ChangeTopic)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("DB_QUERY_TIMEOUT", "750ms")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.Database.QueryTimeout)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "twelve")
	assert.Equal(t, 12, getEnvAsInt("SOME_INT", 12))
}
