// Package config provides configuration loading and management for the
// fastresize command line tool. It handles loading configuration from YAML
// files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the tool configuration loaded from YAML.
type Config struct {
	// Resize parameters
	Resize struct {
		// Workers specifies how many goroutines share the destination rows
		// of each resampling pass
		Workers int `yaml:"workers"`

		// Filter is the default resampling filter name (box, bilinear,
		// hamming, catmullrom, mitchell, lanczos3)
		Filter string `yaml:"filter"`

		// Algorithm selects the resampling strategy: convolution, nearest
		// or supersampling
		Algorithm string `yaml:"algorithm"`

		// SuperSamplingFactor bounds the nearest-neighbor pre-shrink used
		// by the supersampling algorithm
		SuperSamplingFactor int `yaml:"superSamplingFactor"`

		// PremultiplyAlpha controls whether RGBA images are premultiplied
		// before resampling and unpremultiplied afterwards
		PremultiplyAlpha bool `yaml:"premultiplyAlpha"`

		// ForceScalar disables the CPU-extension dispatch and always runs
		// the portable scalar convolution path
		ForceScalar bool `yaml:"forceScalar"`
	} `yaml:"resize"`

	// Output parameters
	Output struct {
		// JPEGQuality is the encoder quality used for .jpg/.jpeg outputs
		JPEGQuality int `yaml:"jpegQuality"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default resize parameters
	cfg.Resize.Workers = runtime.NumCPU() // Use all available cores by default
	cfg.Resize.Filter = "lanczos3"
	cfg.Resize.Algorithm = "convolution"
	cfg.Resize.SuperSamplingFactor = 2
	cfg.Resize.PremultiplyAlpha = true
	cfg.Resize.ForceScalar = false

	// Set default output parameters
	cfg.Output.JPEGQuality = 90
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
