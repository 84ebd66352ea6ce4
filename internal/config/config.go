// Package config loads commodex settings from a TOML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "commodex.toml"

// DefaultSpecPath is the specification the validator reads when neither a
// flag nor SPEC_PATH names one.
const DefaultSpecPath = "specs/example.yaml"

// Config holds all settings.
type Config struct {
	SpecPath     string        `toml:"spec_path"`
	Rows         int           `toml:"rows"`
	UnknownRules string        `toml:"unknown_rules"` // "ignore", "warn" or "fail"
	AllOutputs   bool          `toml:"all_outputs"`
	Ledger       LedgerConfig  `toml:"ledger"`
	Logging      LoggingConfig `toml:"logging"`
}

// LedgerConfig holds the run ledger location. An empty path disables it.
type LedgerConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn" or "error"
}

// NewDefaultConfig returns a Config with defaults.
func NewDefaultConfig() *Config {
	return &Config{
		SpecPath:     DefaultSpecPath,
		Rows:         100,
		UnknownRules: "warn",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration files in order (later files override earlier
// ones), skipping files that do not exist, then applies environment
// overrides.
func Load(paths ...string) (*Config, error) {
	cfg := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SPEC_PATH"); v != "" {
		cfg.SpecPath = v
	}
	if v := os.Getenv("COMMODEX_ROWS"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid COMMODEX_ROWS %q: %w", v, err)
		}
		cfg.Rows = n
	}
	if v := os.Getenv("COMMODEX_UNKNOWN_RULES"); v != "" {
		cfg.UnknownRules = v
	}
	if v := os.Getenv("COMMODEX_LEDGER"); v != "" {
		cfg.Ledger.Path = v
	}
	if v := os.Getenv("COMMODEX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}
