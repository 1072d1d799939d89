// Package config handles configuration loading and validation for
// inputlens. All classification thresholds live here so the policy can
// be tuned without touching the algorithms.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"inputlens/internal/behavior"
	"inputlens/internal/logging"
	"inputlens/internal/rules"
	"inputlens/internal/structure"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete inputlens configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Behavior thresholds for the input behavior analyzer.
	Behavior behavior.Thresholds `toml:"behavior" json:"behavior" yaml:"behavior"`

	// Structure limits for the structure analyzer.
	Structure structure.Limits `toml:"structure" json:"structure" yaml:"structure"`

	// Rules thresholds for the default rule table.
	Rules rules.Config `toml:"rules" json:"rules" yaml:"rules"`

	// Logging configuration for the host commands.
	Logging logging.Config `toml:"logging" json:"logging" yaml:"logging"`

	// History configures the optional analysis-history store.
	History HistoryConfig `toml:"history" json:"history" yaml:"history"`
}

// HistoryConfig holds persistence settings for analyzed profiles.
type HistoryConfig struct {
	// Enabled determines whether finalized profiles are recorded.
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`

	// Path is the SQLite database path.
	Path string `toml:"path" json:"path" yaml:"path"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Version:   Version,
		Behavior:  behavior.DefaultThresholds(),
		Structure: structure.DefaultLimits(),
		Rules:     rules.DefaultConfig(),
		Logging:   logging.DefaultConfig(),
		History: HistoryConfig{
			Enabled: false,
			Path:    defaultHistoryPath(),
		},
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "inputlens.db"
	}
	return filepath.Join(home, ".inputlens", "history.db")
}

// Load reads a config file, chosen by extension (.toml, .yaml, .yml),
// applies it over defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension (want .toml, .yaml, or .yml)", path)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
