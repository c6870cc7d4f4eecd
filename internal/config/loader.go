package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	appName  = "codecollab"
	fileName = "config.json"

	// EnvConfigPath points at an explicit config file and bypasses the
	// XDG lookup.
	EnvConfigPath = "CODECOLLAB_CONFIG"
)

// Env is the slice of the host the loader reads from.
type Env interface {
	UserHomeDir() (string, error)
	Getenv(key string) string
	ReadFile(path string) ([]byte, error)
}

type osEnv struct{}

func (osEnv) UserHomeDir() (string, error)         { return os.UserHomeDir() }
func (osEnv) Getenv(key string) string             { return os.Getenv(key) }
func (osEnv) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Loader resolves the codecollab directories and overlays the user's
// config file on DefaultConfig.
type Loader struct {
	env Env
}

func NewLoader() *Loader {
	return NewLoaderWith(osEnv{})
}

func NewLoaderWith(env Env) *Loader {
	if env == nil {
		panic("env is required")
	}
	return &Loader{env: env}
}

// xdgDir returns $key when set, otherwise home/fallback.
func (l *Loader) xdgDir(key, home string, fallback ...string) string {
	if dir := l.env.Getenv(key); dir != "" {
		return filepath.Join(dir, appName)
	}
	if home == "" {
		return ""
	}
	return filepath.Join(append([]string{home}, append(fallback, appName)...)...)
}

// Path returns the config file the loader would read, or "" when neither
// an override nor a home directory is available.
func (l *Loader) Path() string {
	if p := l.env.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, _ := l.env.UserHomeDir()
	dir := l.xdgDir("XDG_CONFIG_HOME", home, ".config")
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, fileName)
}

// Load builds the effective configuration. Keys present in the file replace
// the defaults, zero values included; absent keys keep them. A missing file
// is not an error.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	home, _ := l.env.UserHomeDir()
	cfg.Storage.DataDir = l.xdgDir("XDG_DATA_HOME", home, ".local", "share")

	path := l.Path()
	if path == "" {
		return cfg, nil
	}

	data, err := l.env.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

// Load reads the configuration from the host environment.
func Load() (*Config, error) {
	return NewLoader().Load()
}
