// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-classical.
//
// go-classical is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-classical/pkg/validation"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CLASSICAL_"

// Config represents the complete configuration of the tool and server
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	RailFence RailFenceConfig `yaml:"railfence"`
	Server    ServerConfig    `yaml:"server"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AnalysisConfig holds the cryptanalysis parameters
type AnalysisConfig struct {
	// FoldDiacritics strips accents before any cipher sees the text.
	FoldDiacritics bool `yaml:"fold_diacritics"`

	// MaxTextLength bounds input size in bytes.
	MaxTextLength int `yaml:"max_text_length"`

	Friedman FriedmanConfig `yaml:"friedman"`
	Kasiski  KasiskiConfig  `yaml:"kasiski"`
}

// FriedmanConfig controls the index of coincidence attack
type FriedmanConfig struct {
	ICThreshold  float64 `yaml:"ic_threshold"`
	MaxKeyLength int     `yaml:"max_key_length"`
}

// KasiskiConfig controls the repeated sequence search
type KasiskiConfig struct {
	MinSequenceLength int `yaml:"min_sequence_length"`
	MaxSequenceLength int `yaml:"max_sequence_length"`
}

// RailFenceConfig holds rail fence defaults
type RailFenceConfig struct {
	Rails  int `yaml:"rails"`
	Offset int `yaml:"offset"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// MetricsConfig controls the metrics endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Analysis: AnalysisConfig{
			MaxTextLength: validation.DefaultMaxTextLength,
			Friedman: FriedmanConfig{
				ICThreshold:  0.07,
				MaxKeyLength: 10,
			},
			Kasiski: KasiskiConfig{
				MinSequenceLength: 3,
				MaxSequenceLength: validation.DefaultMaxSequenceLength,
			},
		},
		RailFence: RailFenceConfig{
			Rails: 3,
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads configuration from a YAML file over the defaults and applies
// environment variable overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 - Config file path is provided by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv(EnvPrefix + "LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv(EnvPrefix + "LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}

	envBool("FOLD_DIACRITICS", &cfg.Analysis.FoldDiacritics)
	envInt("MAX_TEXT_LENGTH", &cfg.Analysis.MaxTextLength)
	envFloat("THRESHOLD", &cfg.Analysis.Friedman.ICThreshold)
	envInt("MAX_KEY_LENGTH", &cfg.Analysis.Friedman.MaxKeyLength)
	envInt("MIN_LENGTH", &cfg.Analysis.Kasiski.MinSequenceLength)
	envInt("MAX_LENGTH", &cfg.Analysis.Kasiski.MaxSequenceLength)
	envInt("RAILS", &cfg.RailFence.Rails)
	envInt("OFFSET", &cfg.RailFence.Offset)

	if host := os.Getenv(EnvPrefix + "HOST"); host != "" {
		cfg.Server.Host = host
	}
	envInt("PORT", &cfg.Server.Port)
	envBool("METRICS_ENABLED", &cfg.Metrics.Enabled)
}

func envInt(name string, dst *int) {
	raw := os.Getenv(EnvPrefix + name)
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s%s value %q, using %d: %v", EnvPrefix, name, raw, *dst, err)
		return
	}
	*dst = v
}

func envFloat(name string, dst *float64) {
	raw := os.Getenv(EnvPrefix + name)
	if raw == "" {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: invalid %s%s value %q, using %v: %v", EnvPrefix, name, raw, *dst, err)
		return
	}
	*dst = v
}

func envBool(name string, dst *bool) {
	raw := os.Getenv(EnvPrefix + name)
	if raw == "" {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s%s value %q, using %t: %v", EnvPrefix, name, raw, *dst, err)
		return
	}
	*dst = v
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validFormats := map[string]bool{
		"json": true, "text": true,
	}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}

	if c.Analysis.MaxTextLength < 1 {
		return fmt.Errorf("analysis max_text_length must be positive: %d", c.Analysis.MaxTextLength)
	}
	if err := validation.ValidateThreshold(c.Analysis.Friedman.ICThreshold); err != nil {
		return fmt.Errorf("analysis friedman: %w", err)
	}
	if err := validation.ValidateKeyLength(c.Analysis.Friedman.MaxKeyLength); err != nil {
		return fmt.Errorf("analysis friedman: %w", err)
	}
	if err := validation.ValidateSequenceLengths(c.Analysis.Kasiski.MinSequenceLength, c.Analysis.Kasiski.MaxSequenceLength); err != nil {
		return fmt.Errorf("analysis kasiski: %w", err)
	}

	if err := validation.ValidateRails(c.RailFence.Rails); err != nil {
		return fmt.Errorf("railfence: %w", err)
	}
	if err := validation.ValidateOffset(c.RailFence.Offset); err != nil {
		return fmt.Errorf("railfence: %w", err)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts cannot be negative")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/': %q", c.Metrics.Path)
	}

	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
