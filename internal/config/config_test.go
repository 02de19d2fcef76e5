package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("TRACKY_SESSION_SECRET", "s3cret")
	t.Setenv("TRACKY_PERSONIO_CLIENTID", "client-1")
	t.Setenv("TRACKY_MOCK", "true")

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, 30, cfg.Session.MaxAgeDays)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, 366, cfg.Calendar.WindowDays)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, "client-1", cfg.Personio.ClientId)
	assert.True(t, cfg.Mock)
	assert.False(t, cfg.Google.Enabled())
}

func TestLoad_YamlOverriddenByEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")
	yaml := "port: 9000\nsession:\n  secret: from-file\n  secure: false\ngoogle:\n  apikey: key\n  calendarid: holidays\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("TRACKY_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "from-file", cfg.Session.Secret)
	assert.False(t, cfg.Session.Secure)
	assert.True(t, cfg.Google.Enabled())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRACKY_SESSION_SECRET=dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TRACKY_SESSION_SECRET") })

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "dotenv", cfg.Session.Secret)
}

func TestLoad_MissingSecret(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("TRACKY_SESSION_SECRET", "")

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrMissingSessionSecret)
}
