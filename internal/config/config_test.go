package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	return dir
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	withTempHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	withTempHome(t)

	original := Config{
		APIURL:  "https://api.example.test",
		Timeout: 10 * time.Second,
		Theme:   "dark",
	}
	require.NoError(t, original.Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original.APIURL, loaded.APIURL)
	assert.Equal(t, original.Timeout, loaded.Timeout)
	assert.Equal(t, original.Theme, loaded.Theme)
}

func TestSaveOverwritesExisting(t *testing.T) {
	withTempHome(t)

	require.NoError(t, (&Config{APIURL: "http://one"}).Save())
	require.NoError(t, (&Config{APIURL: "http://two"}).Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://two", loaded.APIURL)
}

func TestEnvOverridesFile(t *testing.T) {
	withTempHome(t)

	require.NoError(t, (&Config{APIURL: "http://from-file"}).Save())
	t.Setenv(EnvAPIURL, "http://from-env")
	t.Setenv(EnvTimeout, "5s")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", loaded.APIURL)
	assert.Equal(t, 5*time.Second, loaded.Timeout)
}

func TestInvalidTimeoutEnvIgnored(t *testing.T) {
	withTempHome(t)
	t.Setenv(EnvTimeout, "not-a-duration")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Zero(t, loaded.Timeout)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := withTempHome(t)

	cfgDir := filepath.Join(dir, ".a360")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config"), []byte("api_url: [broken"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestPermissionsStrictlyEnforced(t *testing.T) {
	withTempHome(t)

	require.NoError(t, (&Config{APIURL: "http://x"}).Save())
	require.NoError(t, os.Chmod(Path(), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestPathLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".a360")
	assert.Contains(t, path, "config")
}
