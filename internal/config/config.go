// Package config loads the analysis configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults for settings the config file or flags leave unset.
const (
	DefaultAlpha            = 0.05
	DefaultMaxParseFailures = 10
	DefaultOutputDir        = "report"
)

// Config represents the flat lunarlens configuration.
type Config struct {
	Version          string  `json:"version"`
	ReviewsPath      string  `json:"reviews_path"`
	PhasesPath       string  `json:"phases_path"`
	OutputDir        string  `json:"output_dir,omitempty"`
	Alpha            float64 `json:"alpha,omitempty"`              // significance level for the test battery
	MaxParseFailures int     `json:"max_parse_failures,omitempty"` // abort threshold for unparseable rows
	Verbose          bool    `json:"verbose,omitempty"`
}

// Default returns a config with every tunable at its default.
func Default() *Config {
	return &Config{
		Version:          "1",
		OutputDir:        DefaultOutputDir,
		Alpha:            DefaultAlpha,
		MaxParseFailures: DefaultMaxParseFailures,
	}
}

// LoadConfig reads .lunarlens/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".lunarlens", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".lunarlens")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .lunarlens dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyDefaults restores defaults for fields the file zeroed out.
func (c *Config) applyDefaults() {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		c.Alpha = DefaultAlpha
	}
	if c.MaxParseFailures <= 0 {
		c.MaxParseFailures = DefaultMaxParseFailures
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// Validate checks that the config names both input files.
func (c *Config) Validate() error {
	if c.ReviewsPath == "" {
		return fmt.Errorf("reviews path is required")
	}
	if c.PhasesPath == "" {
		return fmt.Errorf("phases path is required")
	}
	return nil
}
