// Package config provides configuration for the fontguard CLI.
// Configuration is loaded from a YAML file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/fontguard/affinity"
	"github.com/wippyai/fontguard/errors"
)

// Default file paths.
const (
	GlobalConfigDir  = ".config/fontguard"
	GlobalConfigFile = "config.yaml"
)

// Default values.
const (
	DefaultAffinity     = affinity.SourceGoroutine
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "console"
	DefaultProbeWorkers = 4
)

// Environment variable names.
const (
	EnvAffinity     = "FONTGUARD_AFFINITY"
	EnvFilter       = "FONTGUARD_FILTER"
	EnvLogLevel     = "FONTGUARD_LOG_LEVEL"
	EnvLogFormat    = "FONTGUARD_LOG_FORMAT"
	EnvMetrics      = "FONTGUARD_METRICS"
	EnvProbeWorkers = "FONTGUARD_PROBE_WORKERS"
)

// Config represents the complete fontguard configuration.
type Config struct {
	Affinity           string        `yaml:"affinity"`
	FilterNonPrintable bool          `yaml:"filter_non_printable"`
	Log                LogConfig     `yaml:"log"`
	Metrics            MetricsConfig `yaml:"metrics"`
	Probe              ProbeConfig   `yaml:"probe"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds metrics settings.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ProbeConfig holds settings for the probe command.
type ProbeConfig struct {
	Workers int `yaml:"workers"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Affinity:           DefaultAffinity,
		FilterNonPrintable: true,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Probe: ProbeConfig{
			Workers: DefaultProbeWorkers,
		},
	}
}

// LoadOptions configures config loading behavior.
type LoadOptions struct {
	// ExplicitPath overrides config discovery (--config flag). It must exist.
	ExplicitPath string
	// SkipGlobal skips loading ~/.config/fontguard/config.yaml.
	SkipGlobal bool
	// SkipEnv skips environment variable overrides.
	SkipEnv bool
}

// Load loads configuration with the following precedence (highest to lowest):
// 1. Environment variables
// 2. Explicit config file, or the global config file if none is given
// 3. Built-in defaults
func Load(opts LoadOptions) (*Config, error) {
	cfg := New()

	switch {
	case opts.ExplicitPath != "":
		if err := loadFile(cfg, opts.ExplicitPath); err != nil {
			return nil, fmt.Errorf("load config %s: %w", opts.ExplicitPath, err)
		}
	case !opts.SkipGlobal:
		if path, err := globalConfigPath(); err == nil {
			if err := loadFile(cfg, path); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("load global config: %w", err)
			}
		}
	}

	if !opts.SkipEnv {
		if err := applyEnvOverrides(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges a YAML file into cfg. Absent fields keep their values.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // Config path from trusted source
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse "+path)
	}
	return nil
}

func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile), nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvAffinity); v != "" {
		cfg.Affinity = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv(EnvFilter); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.InvalidInput(errors.PhaseConfig, "%s: %v", EnvFilter, err)
		}
		cfg.FilterNonPrintable = b
	}
	if v := os.Getenv(EnvMetrics); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.InvalidInput(errors.PhaseConfig, "%s: %v", EnvMetrics, err)
		}
		cfg.Metrics.Enabled = b
	}
	if v := os.Getenv(EnvProbeWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.InvalidInput(errors.PhaseConfig, "%s: %v", EnvProbeWorkers, err)
		}
		cfg.Probe.Workers = n
	}
	return nil
}

// Validate normalizes case and rejects values the CLI cannot act on.
// Every source (file, environment, flags) goes through it.
func (c *Config) Validate() error {
	c.normalize()

	if _, err := affinity.SourceByName(c.Affinity); err != nil {
		return err
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.InvalidInput(errors.PhaseConfig, "unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.InvalidInput(errors.PhaseConfig, "unknown log format %q", c.Log.Format)
	}
	if c.Probe.Workers < 1 {
		return errors.InvalidInput(errors.PhaseConfig, "probe.workers must be at least 1, got %d", c.Probe.Workers)
	}
	return nil
}

func (c *Config) normalize() {
	c.Affinity = strings.ToLower(strings.TrimSpace(c.Affinity))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Source returns the configured thread identity source.
func (c *Config) Source() affinity.Source {
	s, err := affinity.SourceByName(c.Affinity)
	if err != nil {
		return affinity.Goroutine
	}
	return s
}
