// Package config loads the preprocessor's optional, machine-local TOML
// configuration file, which pins defaults so they don't need repeating on
// every invocation. The log level can also be given per run with --log;
// the stdlib root and the diagnostic color setting come only from this
// file.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"
)

// Config holds the defaults the CLI falls back to when a flag is not
// given explicitly.
type Config struct {
	Stdlib struct {
		Root string `toml:"root"` // overrides the materialized cache directory
	} `toml:"stdlib"`

	Logging struct {
		Level string `toml:"level"` // DEBUG, INFO, WARNING, ERROR, CRITICAL
	} `toml:"logging"`

	Output struct {
		Color bool `toml:"color"`
	} `toml:"output"`
}

// Default returns a Config with the preprocessor's built-in defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Logging.Level = "WARNING"
	cfg.Output.Color = true
	return cfg
}

// Path returns the platform config file path: ~/.config/lispp/config.toml
// on Unix, %APPDATA%\lispp\config.toml on Windows.
func Path() string {
	var dir string

	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "lispp")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		dir = filepath.Join(home, ".config", "lispp")
	}

	return filepath.Join(dir, "config.toml")
}

// Load reads the config file at Path(), returning Default() unmodified if
// it does not exist.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path, returning Default() unmodified
// if it does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Annotate(err, "parsing config file")
	}
	return cfg, nil
}
