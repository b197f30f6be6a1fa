package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the root configuration for tpt, stored in ~/.tpt/config.yaml.
type Config struct {
	// Path is the journal store file.
	Path string
	// Backend selects the store format: "json" or "sqlite".
	Backend string
	// LegacyPath is the plain-text log imported by `tpt migrate`.
	LegacyPath string
	// DefaultXP is awarded to new entries when no --xp is given.
	DefaultXP int
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	// EnvPrefix prefixes every environment override, e.g. TPT_PATH.
	EnvPrefix = "TPT"
	// EnvConfigPath overrides the directory holding config.yaml.
	EnvConfigPath = "TPT_CONFIG_PATH"

	DefaultDir        = "~/.tpt"
	DefaultPath       = "~/.tpt/progress.json"
	DefaultLegacyPath = "~/.tpt/progress.txt"
	DefaultXP         = 10
)

// configTemplate is the annotated config written on first run.
const configTemplate = `# tpt configuration - ~/.tpt/config.yaml
#
# All settings are optional; the built-in defaults shown below work out of
# the box. Every key can also be set through the environment with a TPT_
# prefix, e.g. TPT_PATH=/tmp/journal.json tpt list.

# Journal store file. "~" is expanded to your home directory.
path: ~/.tpt/progress.json

# Store format:
# - json    human-readable, indented JSON array (default)
# - sqlite  single-file SQLite database
backend: json

# Plain-text log from earlier versions, imported by "tpt migrate".
# Each line looks like: [2024-01-03 08:32:10] what I did
legacy_path: ~/.tpt/progress.txt

# XP awarded to new entries when --xp is not given.
default_xp: 10
`

// configDir returns the directory holding config.yaml.
func configDir() (string, error) {
	if override := os.Getenv(EnvConfigPath); override != "" {
		return homedir.Expand(override)
	}
	dir, err := homedir.Expand(DefaultDir)
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return dir, nil
}

// WarnFunc receives non-fatal problems found while loading.
type WarnFunc func(format string, args ...any)

// Load reads config.yaml, creating it with annotated defaults on first run,
// and applies TPT_* environment overrides. A template that cannot be written
// is reported through warn, which may be nil.
func Load(warn WarnFunc) (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(dir, warn)
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir string, warn WarnFunc) (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("backend", BackendJSON)
	v.SetDefault("legacy_path", DefaultLegacyPath)
	v.SetDefault("default_xp", DefaultXP)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("parsing config file in %s: %w\nTip: delete the file to regenerate defaults", dir, err)
		}
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(filepath.Join(dir, "config.yaml")); writeErr != nil && warn != nil {
			warn("could not create config file in %s: %v", dir, writeErr)
		}
	}

	cfg := Config{
		Path:       v.GetString("path"),
		Backend:    strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		LegacyPath: v.GetString("legacy_path"),
		DefaultXP:  v.GetInt("default_xp"),
	}
	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithPath returns a copy of cfg using path as the journal store.
func (c Config) WithPath(path string) (Config, error) {
	c.Path = path
	if err := c.resolve(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// resolve expands ~ in paths and validates the values.
func (c *Config) resolve() error {
	switch c.Backend {
	case "":
		c.Backend = BackendJSON
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown backend %q (want %q or %q)", c.Backend, BackendJSON, BackendSQLite)
	}
	if c.DefaultXP < 0 {
		return fmt.Errorf("config: default_xp must not be negative, got %d", c.DefaultXP)
	}

	var err error
	if c.Path, err = expand(c.Path, DefaultPath); err != nil {
		return err
	}
	if c.LegacyPath, err = expand(c.LegacyPath, DefaultLegacyPath); err != nil {
		return err
	}
	return nil
}

func expand(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = fallback
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("config: expanding %q: %w", path, err)
	}
	return p, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
