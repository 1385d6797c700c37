package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrNoHost is returned by HostOrErr when no server has been configured.
var ErrNoHost = errors.New("no host configured; pass --host or run login with --host first")

// Config holds runtime settings for the login CLI.
//
// Fields:
//   - Path: the file the config was loaded from and is saved to.
//   - Host: base URL of the login server.
//   - Timeout: per-request HTTP timeout.
type Config struct {
	Path    string
	Host    string
	Timeout time.Duration
}

// LoadDefaults populates c with defaults. Path is left untouched.
func (c *Config) LoadDefaults() {
	c.Host = ""
	c.Timeout = 10 * time.Second
}

// DefaultPath returns <user config dir>/todo/config.json.
func DefaultPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "todo", "config.json"), nil
}

// userConfigDir is a seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

// LoadConfig reads the config at path (DefaultPath when empty), writing a
// default file first if none exists.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{Path: path}
	cfg.LoadDefaults()

	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HostOrErr returns Host or ErrNoHost.
func (c *Config) HostOrErr() (string, error) {
	if c.Host == "" {
		return "", ErrNoHost
	}
	return c.Host, nil
}
