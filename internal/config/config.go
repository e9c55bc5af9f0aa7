// Package config loads the optional .ciriusrc.yaml project configuration
// (SPEC_FULL "Configuration"). This sits outside spec.md's Non-goals,
// which exclude language features, not CLI ergonomics.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds defaults that flags may override. Zero value is valid: an
// absent .ciriusrc.yaml means every field stays at its default.
type Config struct {
	OutputDir string `yaml:"output_dir"`
	Optimize  *bool  `yaml:"optimize"`
	Verbose   bool   `yaml:"verbose"`
}

// DefaultOptimize is the optimizer's default-on setting when neither the
// config file nor a flag says otherwise.
const DefaultOptimize = true

// OptimizeOrDefault returns the configured Optimize value, or
// DefaultOptimize when the config file did not set it.
func (c *Config) OptimizeOrDefault() bool {
	if c == nil || c.Optimize == nil {
		return DefaultOptimize
	}
	return *c.Optimize
}

// Load reads and parses path. A missing file is not an error: it returns
// an empty Config so callers fall back to flag defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
