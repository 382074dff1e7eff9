// Package config resolves runtime settings from defaults, an optional .env
// file and LIBRARY_* environment variables. Command-line flags are applied
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultBanner   = "LIBRARY MANAGEMENT"
	DefaultLogLevel = "warn"
)

// Config holds runtime settings. An empty SeedFile selects the built-in
// department data.
type Config struct {
	Banner   string
	SeedFile string
	LogLevel string
	NoColor  bool
	Plain    bool
}

func Default() Config {
	return Config{Banner: DefaultBanner, LogLevel: DefaultLogLevel}
}

// Load reads the given env files (".env" when none are named) and then the
// environment. Missing env files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a variable lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	if v := getenv("LIBRARY_BANNER"); v != "" {
		cfg.Banner = v
	}
	if v := getenv("LIBRARY_SEED_FILE"); v != "" {
		cfg.SeedFile = v
	}
	if v := getenv("LIBRARY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	var err error
	if cfg.NoColor, err = envBool(getenv, "LIBRARY_NO_COLOR"); err != nil {
		return Config{}, err
	}
	if cfg.Plain, err = envBool(getenv, "LIBRARY_PLAIN"); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envBool(getenv func(string) string, key string) (bool, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	lvl, err := c.Level()
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
