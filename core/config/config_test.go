package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "BeamMP-Server.exe", cfg.Instance.Executable)
	assert.Equal(t, "ServerConfig.toml", cfg.Instance.ConfigFile)
	assert.Equal(t, "version.log", cfg.Instance.ManifestFile)
	assert.Equal(t, 30814, cfg.Instance.Port)
	assert.Equal(t, 12, cfg.Instance.MaxPlayers)
	assert.Equal(t, "/levels/west_coast_usa/info.json", cfg.Instance.Map)
	assert.Equal(t, "WindowsGSM", cfg.Release.UserAgent)
	assert.Equal(t, 30, cfg.Release.TimeoutSeconds)
	assert.False(t, cfg.Storage.Enabled)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "@every 1h", cfg.Schedule.UpdateCheck)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("INSTANCE_PORT", "30900")
	t.Setenv("INSTANCE_SERVER_NAME", "Friday Night Racing")
	t.Setenv("RELEASE_TIMEOUT_SECONDS", "5")
	t.Setenv("SCHEDULE_AUTO_UPDATE", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 30900, cfg.Instance.Port)
	assert.Equal(t, "Friday Night Racing", cfg.Instance.ServerName)
	assert.Equal(t, 5, cfg.Release.TimeoutSeconds)
	assert.True(t, cfg.Schedule.AutoUpdate)

	a := cfg.Instance.Authoritative()
	assert.Equal(t, 30900, a.Port)
	assert.Equal(t, "Friday Night Racing", a.ServerName)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("INSTANCE_MAX_PLAYERS=24\nLOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("INSTANCE_MAX_PLAYERS")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Instance.MaxPlayers)
	assert.Equal(t, "debug", cfg.Log.Level)
}
