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
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
listen:
  port: "9090"
  read_timeout: 2s
  write_timeout: 4s
api:
  base_url: http://localhost:2021/api
session:
  db_path: /tmp/eveweb-session
notifications:
  duration: 3s
  default_error_message: Something went wrong
log:
  level: debug
  json: true
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Listen.Port)
		assert.Equal(t, 2*time.Second, cfg.Listen.ReadTimeout)
		assert.Equal(t, "http://localhost:2021/api", cfg.API.BaseURL)
		assert.Equal(t, "/tmp/eveweb-session", cfg.Session.DBPath)
		assert.Equal(t, 3*time.Second, cfg.Notifications.Duration)
		assert.Equal(t, "Something went wrong", cfg.Notifications.DefaultErrorMessage)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Log.JSON)
	})

	t.Run("defaults fill optional fields", func(t *testing.T) {
		path := writeConfig(t, `
api:
  base_url: http://localhost:2021/api
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "8081", cfg.Listen.Port)
		assert.Equal(t, 5*time.Second, cfg.Listen.ReadTimeout)
		assert.Equal(t, 10*time.Second, cfg.Listen.WriteTimeout)
		assert.Equal(t, "data/session", cfg.Session.DBPath)
		assert.Equal(t, 5*time.Second, cfg.Notifications.Duration)
		assert.Equal(t, "An error occurred", cfg.Notifications.DefaultErrorMessage)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("missing base url fails", func(t *testing.T) {
		path := writeConfig(t, `listen: {port: "9090"}`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		path := writeConfig(t, "listen: [::invalid")
		_, err := Load(path)
		assert.Error(t, err)
	})
}
