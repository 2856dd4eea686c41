// Package config provides application configuration with YAML file loading
// on top of built-in defaults.
package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration for the application
type Config struct {
	// LogLevel is the logging level (debug, info, warn, error)
	LogLevel string `koanf:"log_level"`

	// WindowDays is the half-width of the incident time window in days
	WindowDays int `koanf:"window_days"`

	// TopComponents caps the affected-component ranking
	TopComponents int `koanf:"top_components"`

	// Narrative configures the optional text-generation collaborator
	Narrative NarrativeConfig `koanf:"narrative"`
}

// NarrativeConfig holds text-generation settings
type NarrativeConfig struct {
	// Model is the model identifier passed to the provider
	Model string `koanf:"model"`

	// MaxTokens caps the completion length
	MaxTokens int `koanf:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		WindowDays:    3,
		TopComponents: 10,
		Narrative: NarrativeConfig{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 4000,
		},
	}
}

// Load returns the defaults overlaid with values from the YAML file at
// path. An empty path loads pure defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.WindowDays < 1 {
		return NewConfigError("window_days must be at least 1")
	}
	if c.TopComponents < 1 {
		return NewConfigError("top_components must be at least 1")
	}
	if c.Narrative.MaxTokens < 1 {
		return NewConfigError("narrative.max_tokens must be at least 1")
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	message string
}

// NewConfigError creates a new configuration error
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return e.message
}
