package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.Guest.SessionTTL)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Catalog.SeedOnStart)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:5173")
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GUEST_SESSION_TTL", "2h")
	t.Setenv("EMAIL_WORKER_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("REDIS_POOL_SIZE", "not-a-number")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Guest.SessionTTL)
	assert.False(t, cfg.Email.WorkerEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}
