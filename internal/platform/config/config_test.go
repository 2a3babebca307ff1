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

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.History.Retention)
	assert.Equal(t, 100, cfg.Render.MaxBatchItems)
	assert.False(t, cfg.Auth.RequireAPIKey)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9090
jwt:
  secret: file-secret
  download_token_ttl: 5m
history:
  retention: 48h
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("AUTH_REQUIRE_API_KEY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 5*time.Minute, cfg.JWT.DownloadTokenTTL)
	assert.Equal(t, 48*time.Hour, cfg.History.Retention)
	assert.True(t, cfg.Auth.RequireAPIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
