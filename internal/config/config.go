package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCollapseThreshold is the step count above which the run view
// collapses steps at the scenario level.
const DefaultCollapseThreshold = 200

// Config is the project configuration read from .cukelive/config.yml.
type Config struct {
	FeaturesDir       string `yaml:"features_dir"`
	Runner            Runner `yaml:"runner"`
	CollapseThreshold int    `yaml:"collapse_threshold"`
}

// Runner names the external command that executes the scenarios.
type Runner struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		FeaturesDir:       "features",
		Runner:            Runner{Command: "cucumber"},
		CollapseThreshold: DefaultCollapseThreshold,
	}
}

// Load reads the config file and fills absent fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	defaults := Default()
	if cfg.FeaturesDir == "" {
		cfg.FeaturesDir = defaults.FeaturesDir
	}
	if cfg.Runner.Command == "" {
		cfg.Runner.Command = defaults.Runner.Command
	}
	if cfg.CollapseThreshold == 0 {
		cfg.CollapseThreshold = defaults.CollapseThreshold
	}
	return cfg, nil
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
