// Package config loads the surveygrid configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relieftools/surveygrid/internal/question"
)

// Config holds all surveygrid configuration.
type Config struct {
	// DatabasePath is the sqlite file holding questions and answers.
	DatabasePath string `yaml:"database_path"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Hierarchy are the display names for the five administrative
	// levels L0..L4.
	Hierarchy []string `yaml:"hierarchy"`

	// Bandings are named z-score boundary sets for priority
	// classification.
	Bandings map[string][]float64 `yaml:"bandings"`

	// Banding names the boundary set to use.
	Banding string `yaml:"banding"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		DatabasePath: "surveygrid.db",
		LogLevel:     "info",
		Hierarchy:    question.DefaultHierarchyLabels[:],
		Bandings: map[string][]float64{
			"default":  {-1, -0.5, 0, 0.5, 1},
			"standard": {-2, -1, 0, 1, 2},
		},
		Banding: "default",
	}
}

// Load reads a YAML configuration file over the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the cross-field constraints.
func (c *Config) Validate() error {
	if len(c.Hierarchy) != 5 {
		return fmt.Errorf("config: hierarchy needs 5 labels, got %d", len(c.Hierarchy))
	}
	if _, ok := c.Bandings[c.Banding]; !ok {
		return fmt.Errorf("config: unknown banding %q", c.Banding)
	}
	return nil
}

// HierarchyLabels returns the L0..L4 labels as the fixed-size array the
// question registry wants.
func (c *Config) HierarchyLabels() [5]string {
	var out [5]string
	copy(out[:], c.Hierarchy)
	return out
}

// Boundaries returns the selected banding's z-score boundaries.
func (c *Config) Boundaries() []float64 {
	return c.Bandings[c.Banding]
}
