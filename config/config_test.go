package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Config_Defaults(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, "PS4", cfg.DefaultPlatform)
	require.Equal(t, 30*time.Second, cfg.PollInterval)
	require.Equal(t, 128.0, cfg.MinLargeCatalogGB)

	require.True(t, cfg.LargeCatalog("PS3"))
	require.True(t, cfg.LargeCatalog("PS4"))
	require.False(t, cfg.LargeCatalog("PSP"))
	require.False(t, cfg.LargeCatalog("PS2"))
}

func Test_Config_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	data := []byte("base_url: http://backend:5000/api\npoll_interval: 10s\npage_size: 10\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "http://backend:5000/api", cfg.BaseURL)
	require.Equal(t, 10*time.Second, cfg.PollInterval)
	require.Equal(t, 10, cfg.PageSize)
	// untouched keys keep their defaults
	require.Equal(t, "PS4", cfg.DefaultPlatform)
}

func Test_Config_LoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default().BaseURL, cfg.BaseURL)
}

func Test_Config_EnvOverride(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://override:5000/api")
	t.Setenv(EnvSessionFile, "/tmp/other_session.json")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://override:5000/api", cfg.BaseURL)
	require.Equal(t, "/tmp/other_session.json", cfg.SessionFile)
}

func Test_Config_Validate(t *testing.T) {
	cfg := Default()
	cfg.PollInterval = 0
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.BaseURL = ""
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.PageSize = 0
	require.Error(t, cfg.Validate())
}
