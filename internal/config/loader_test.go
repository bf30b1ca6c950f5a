package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
network:
  name: goerli
  poll_interval: 15s
rates:
  base_url: https://rates.example.com/
redis:
  addr: localhost:6379
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "goerli", cfg.Network.Name)
	assert.Equal(t, 15*time.Second, cfg.Network.PollInterval)
	assert.Equal(t, "https://rates.example.com/", cfg.Rates.BaseURL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
network:
  name: main
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Network.PollInterval)
	assert.NotEmpty(t, cfg.Rates.BaseURL)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_REDIS_ADDR", "redis.internal:6379")

	path := writeConfig(t, `
redis:
  addr: ${TEST_REDIS_ADDR}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Setenv("NETWORK", "")
	t.Setenv("INFURA_PROJECT_ID", "abc123")

	cfg := Default()
	assert.Equal(t, "main", cfg.Network.Name)
	assert.Equal(t, "abc123", cfg.Network.InfuraProjectID)
	assert.Equal(t, 8080, cfg.Server.Port)
}
