// Package config loads the settings of the caret command from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "CARET_CONFIG"

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the command settings. Flags given on the command line
// override values from the file.
type Config struct {
	Format   string `toml:"format"`
	Indent   int    `toml:"indent"`
	MaxDepth int    `toml:"max_depth"`
	Strict   bool   `toml:"strict"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{Format: FormatJSON, Indent: 2}
}

func (c *Config) applyDefaults() {
	if c.Format == "" {
		c.Format = FormatJSON
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("unknown format %q (want %s or %s)", c.Format, FormatJSON, FormatYAML))
	}
	if c.Indent < 0 || c.Indent > 8 {
		errs = append(errs, fmt.Errorf("indent must be between 0 and 8, got %d", c.Indent))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	return errors.Join(errs...)
}

// Load reads the config file at path.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	// Keys missing from the file keep their defaults; an explicit indent = 0
	// stays 0.
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPaths returns the locations searched when neither a path nor the
// environment variable is given.
func DefaultPaths() []string {
	paths := []string{"./caret.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "caret", "config.toml"))
	}
	return paths
}

// LoadFromEnv loads the file named by CARET_CONFIG, or the first existing
// default path. Without any file it returns Default().
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}
