package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ConfigFiles are the file names looked up in the config directory, in order.
// The first one that exists wins.
var ConfigFiles = []string{"config.toml", "config.yaml", "config.yml"}

// fileConfig mirrors the settable fields of Config in a config file.
type fileConfig struct {
	Backend    string `toml:"backend" yaml:"backend"`
	BackendURL string `toml:"backend_url" yaml:"backend_url"`
	Timeout    string `toml:"timeout" yaml:"timeout"`
	LogLevel   string `toml:"log_level" yaml:"log_level"`
	LogFormat  string `toml:"log_format" yaml:"log_format"`
}

// FilePath returns the config file that would be loaded, or "" if none exists.
func (c *Config) FilePath() string {
	for _, name := range ConfigFiles {
		path := filepath.Join(c.Dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (c *Config) loadFile() error {
	path := c.FilePath()
	if path == "" {
		return nil
	}

	var fc fileConfig
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return fmt.Errorf("loading config file %s: %w", path, err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("loading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	return c.apply(fc)
}

func (c *Config) apply(fc fileConfig) error {
	if fc.Backend != "" {
		c.Backend = fc.Backend
	}
	if fc.BackendURL != "" {
		c.BackendURL = fc.BackendURL
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", fc.Timeout, err)
		}
		c.Timeout = d
	}
	return nil
}
