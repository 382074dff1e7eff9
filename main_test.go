package main

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/config"
)

func TestLoadSeed(t *testing.T) {
	data, err := loadSeed("")
	require.NoError(t, err)
	assert.Len(t, data.Departments, 5)

	_, err = loadSeed(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestRootCommandTakesNoArgs(t *testing.T) {
	cmd := newRootCmd(config.Default())
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"extra"})
	require.Error(t, cmd.Execute())
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd(config.Default())
	require.NoError(t, cmd.ParseFlags([]string{"--banner", "HI", "--plain", "--log-level", "debug"}))

	banner, err := cmd.Flags().GetString("banner")
	require.NoError(t, err)
	assert.Equal(t, "HI", banner)
	plain, _ := cmd.Flags().GetBool("plain")
	assert.True(t, plain)
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "chatty"
	require.Error(t, run(cfg))
}

func TestRunAbortsOnBadBanner(t *testing.T) {
	cfg := config.Default()
	cfg.Banner = "LIB\tX"
	err := run(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banner")
}
