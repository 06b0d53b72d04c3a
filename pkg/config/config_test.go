package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	App    App    `mapstructure:"app"`
	Logger Logger `mapstructure:"logger"`
	API    API    `mapstructure:"api"`
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  name: dashboard\napi:\n  port: 8080\n"), 0o600))

	t.Setenv("API_PORT", "9090")

	var cfg testConfig
	require.NoError(t, Load(path, &cfg, map[string]interface{}{
		"logger.level": "info",
		"api.port":     8000,
	}))

	assert.Equal(t, "dashboard", cfg.App.Name)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg, map[string]interface{}{
		"app.name": "fallback",
	}))
	assert.Equal(t, "fallback", cfg.App.Name)
}
