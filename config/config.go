package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"cslint/internal/adapter/scanner"
)

// Config holds all configuration for the linter.
type Config struct {
	Lint    LintConfig    `yaml:"lint"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// LintConfig holds file selection and style thresholds.
type LintConfig struct {
	Includes        []string `yaml:"includes"`
	Excludes        []string `yaml:"excludes"`
	MaxMethodLength int      `yaml:"max_method_length"`
	MaxLineLength   int      `yaml:"max_line_length"`
}

// CacheConfig holds report cache configuration.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// OutputConfig holds report output configuration.
type OutputConfig struct {
	Format string `yaml:"format"` // "text" or "json"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // "quiet", "info" or "debug"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Lint: LintConfig{
			Includes:        []string{"**/*.cs"},
			Excludes:        []string{"**/bin/**", "**/obj/**", "**/.git/**", "**/*.g.cs", "**/*.Designer.cs"},
			MaxMethodLength: scanner.DefaultMaxMethodLength,
			MaxLineLength:   scanner.DefaultMaxLineLength,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for cslint.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "cslint.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".cslint", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Validate rejects settings that have no sensible fallback.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown output format: %s", c.Output.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "quiet", "info", "debug":
	default:
		return fmt.Errorf("unknown logging level: %s", c.Logging.Level)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ScannerConfig returns the thresholds for the scanner. Missing or
// non-positive values fall back to the defaults.
func (c *Config) ScannerConfig() scanner.Config {
	cfg := scanner.DefaultConfig()
	if c.Lint.MaxMethodLength > 0 {
		cfg.MaxMethodLength = c.Lint.MaxMethodLength
	}
	if c.Lint.MaxLineLength > 0 {
		cfg.MaxLineLength = c.Lint.MaxLineLength
	}
	return cfg
}

// Verbose reports whether per-file status lines should be printed.
func (c *Config) Verbose() bool {
	return strings.EqualFold(c.Logging.Level, "debug")
}

// Quiet reports whether status lines should be suppressed.
func (c *Config) Quiet() bool {
	return strings.EqualFold(c.Logging.Level, "quiet")
}

// CacheDBPath returns the path to the report cache database.
func CacheDBPath(dir string) string {
	return filepath.Join(dir, ".cslint", "cache.db")
}

// EnsureDir ensures the .cslint directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".cslint"), 0755)
}
