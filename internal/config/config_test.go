package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIURL, EnvDatabase, EnvPageSize, EnvTimeout} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, 2, cfg.PageSize)
	assert.Contains(t, cfg.Database, ".bookworm")
}

func TestLoad_ExplicitMissingFileIsAnError(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_ReadsYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api_url: https://books.example.com\n"+
			"database: /tmp/bw.db\n"+
			"page_size: 10\n"+
			"timeout: 15s\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://books.example.com", cfg.APIURL)
	assert.Equal(t, "/tmp/bw.db", cfg.Database)
	assert.Equal(t, 10, cfg.PageSize)

	timeout, err := cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, timeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://file.example.com\npage_size: 4\n"), 0o600))

	t.Setenv(EnvAPIURL, "https://env.example.com")
	t.Setenv(EnvPageSize, "9")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, 9, cfg.PageSize)
}

func TestLoad_RejectsBadPageSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvPageSize, "zero")

	_, err := Load("")
	require.Error(t, err)

	t.Setenv(EnvPageSize, "-1")
	_, err = Load("")
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [broken\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestRequestTimeout(t *testing.T) {
	var cfg Config

	d, err := cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d, "empty timeout means transport defaults govern")

	cfg.Timeout = "750ms"
	d, err = cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, d)

	cfg.Timeout = "soon"
	_, err = cfg.RequestTimeout()
	require.Error(t, err)
}
