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

	assert.Equal(t, 100, cfg.Snipe.PageSize)
	assert.Equal(t, 1000, cfg.NetBox.PageSize)
	assert.Equal(t, 1, cfg.NetBox.DefaultSiteID)
	assert.Equal(t, "Default Site", cfg.Sync.DefaultSiteName)
	assert.False(t, cfg.Sync.AllowUpdates)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Storage.Retention)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "NETBOX_URL=https://netbox.example\nSYNC_ALLOW_UPDATES=true\nSYNC_FALLBACK_SITES=lab=Research Lab\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("NETBOX_URL")
		os.Unsetenv("SYNC_ALLOW_UPDATES")
		os.Unsetenv("SYNC_FALLBACK_SITES")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://netbox.example", cfg.NetBox.URL)
	assert.Equal(t, "lab=Research Lab", cfg.Sync.FallbackSites)

	policy := cfg.Sync.Policy()
	assert.True(t, policy.AllowUpdates)
	assert.False(t, policy.AllowLinking)
}
