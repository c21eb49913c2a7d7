// Package config provides configuration management for checkup.
// It supports a project-level YAML file, environment variables, and sensible
// defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMinCoverage is the coverage threshold used when neither the flag,
// the environment, nor the config file provides one.
const DefaultMinCoverage = 80

// Config represents the complete checkup configuration.
type Config struct {
	// Toolchain pins the project toolchain (uv, bun). Empty means
	// auto-detect from marker files.
	Toolchain string `yaml:"toolchain,omitempty"`

	// Verify configures default verification behavior
	Verify VerifyConfig `yaml:"verify"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output"`
}

// VerifyConfig holds verification defaults.
type VerifyConfig struct {
	// MinCoverage is the default coverage threshold for the test step
	MinCoverage int `yaml:"min_coverage"`
	// ExtraArgs appends arguments to a step's command, keyed by step name
	ExtraArgs map[string][]string `yaml:"extra_args,omitempty"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never)
	Color string `yaml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Verify: VerifyConfig{
			MinCoverage: DefaultMinCoverage,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// fileName is the name of the project-level config file.
const fileName = ".checkup.yaml"

// FilePath returns the path to the config file for a project directory.
func FilePath(dir string) string {
	return filepath.Join(dir, fileName)
}

// Load loads the configuration for a project directory, merging file values
// over defaults. If no config file exists, returns defaults with environment
// overrides applied.
func Load(dir string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is constructed from the project directory
	data, err := os.ReadFile(FilePath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	// Parse YAML over defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the project's config file.
func (c *Config) Save(dir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(FilePath(dir), data, 0o644)
}

// Exists returns true if a config file exists in the project directory.
func Exists(dir string) bool {
	_, err := os.Stat(FilePath(dir))
	return err == nil
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern CHECKUP_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("CHECKUP_TOOLCHAIN"); v != "" {
		c.Toolchain = v
	}
	if v := os.Getenv("CHECKUP_VERIFY_MIN_COVERAGE"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 && n <= 100 {
			c.Verify.MinCoverage = n
		}
	}
	if v := os.Getenv("CHECKUP_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
}
