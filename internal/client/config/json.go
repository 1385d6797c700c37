package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/todoauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for the config file.
type JsonConfig struct {
	Host    string          `json:"host,omitempty"`
	Timeout *timex.Duration `json:"timeout,omitempty"`
}

// parseJson overlays cfg with the file at cfg.Path. A missing file is
// created from cfg's current values.
func parseJson(cfg *Config) error {
	data, err := os.ReadFile(cfg.Path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("generate config %s: %w", cfg.Path, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", cfg.Path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", cfg.Path, err)
	}

	if jc.Host != "" {
		cfg.Host = jc.Host
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	return nil
}

// Save writes cfg to cfg.Path, creating parent directories.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return err
	}

	jc := JsonConfig{Host: c.Host, Timeout: &timex.Duration{Duration: c.Timeout}}
	data, err := json.MarshalIndent(jc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, append(data, '\n'), 0o600)
}
