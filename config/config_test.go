package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapEnv(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(mapEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "LIBRARY MANAGEMENT", cfg.Banner)
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(mapEnv(map[string]string{
		"LIBRARY_BANNER":    "HELLO",
		"LIBRARY_SEED_FILE": "/tmp/seed.json",
		"LIBRARY_LOG_LEVEL": "DEBUG",
		"LIBRARY_NO_COLOR":  "true",
		"LIBRARY_PLAIN":     "1",
	}))
	require.NoError(t, err)
	assert.Equal(t, Config{Banner: "HELLO", SeedFile: "/tmp/seed.json", LogLevel: "DEBUG", NoColor: true, Plain: true}, cfg)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	_, err := FromEnv(mapEnv(map[string]string{"LIBRARY_PLAIN": "maybe"}))
	require.Error(t, err)

	_, err = FromEnv(mapEnv(map[string]string{"LIBRARY_LOG_LEVEL": "loud"}))
	require.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LIBRARY_BANNER=FROM FILE\n"), 0o644))
	t.Setenv("LIBRARY_BANNER", "")
	os.Unsetenv("LIBRARY_BANNER")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "FROM FILE", cfg.Banner)
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	log := cfg.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
