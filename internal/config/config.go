// Package config provides configuration handling for girgen.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration.
type Config struct {
	SearchPath []string `yaml:"searchPath" json:"searchPath"`
	Deny       []string `yaml:"deny" json:"deny"`
	Options    Options  `yaml:"options" json:"options"`
}

// Options represents generation options.
type Options struct {
	SkipDeprecated bool `yaml:"skipDeprecated" json:"skipDeprecated"`
	Verbose        bool `yaml:"verbose" json:"verbose"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		SearchPath: DefaultSearchPath(),
		Options:    DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on
// extension) and merges it over the defaults.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	c.merge(&loaded)

	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	// Configured directories take priority over the default path.
	if len(loaded.SearchPath) > 0 {
		c.SearchPath = append(loaded.SearchPath, c.SearchPath...)
	}
	c.Deny = append(c.Deny, loaded.Deny...)
	if loaded.Options.SkipDeprecated {
		c.Options.SkipDeprecated = true
	}
	if loaded.Options.Verbose {
		c.Options.Verbose = true
	}
}

// Denied checks whether a qualified entity name was excluded by
// configuration.
func (c *Config) Denied(qualified string) bool {
	for _, d := range c.Deny {
		if d == qualified {
			return true
		}
	}
	return false
}
