package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENFEC_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "electioncache", cfg.Redis.Namespace)
	assert.Equal(t, "GA", cfg.Sources.State)
	assert.Equal(t, 2026, cfg.Sources.Cycle)
	assert.Equal(t, time.Hour, cfg.Cache.DataTTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.RSSTTL)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENFEC_API_KEY", "test-key")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CACHE_RSS_TTL", "15m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("RATE_LIMIT_RPS", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cache.RSSTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, float64(50), cfg.RateLimit.RequestsPerSecond)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("OPENFEC_API_KEY", "test-key")
	t.Setenv("ELECTION_CYCLE", "not-a-number")
	t.Setenv("CACHE_DATA_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2026, cfg.Sources.Cycle)
	assert.Equal(t, time.Hour, cfg.Cache.DataTTL)
}
