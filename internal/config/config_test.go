package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout())
	assert.Equal(t, "memory", cfg.History.Backend)
	assert.Equal(t, "seclens_session", cfg.Session.CookieName)
	assert.Equal(t, 86400, cfg.Session.MaxAgeSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.NATS.Enabled)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: 9999
history:
  backend: redis
  redis_addr: redis:6379
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.History.Backend)
	assert.Equal(t, "redis:6379", cfg.History.RedisAddr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, "seclens_session", cfg.Session.CookieName)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SECLENS_SERVER_PORT", "7070")
	t.Setenv("SECLENS_HISTORY_BACKEND", "postgres")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.History.Backend)
}
