package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// knownAlgorithms are the names the experiment section accepts, plus the
// "all" shorthand.
var knownAlgorithms = map[string]bool{
	"all":        true,
	"steepest":   true,
	"stochastic": true,
	"sideways":   true,
	"restart":    true,
	"sa":         true,
	"ga":         true,
}

// ParseYAML parses a Config from YAML bytes and validates it. Values start
// from Default(), so a partial file only overrides what it mentions.
func ParseYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// validate performs file-level validation. Algorithm parameter ranges are
// checked again by each solver's own Validate before any search starts.
func validate(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if len(cfg.Experiment.Algorithms) == 0 {
		return fmt.Errorf("at least one algorithm must be selected")
	}
	for _, name := range cfg.Experiment.Algorithms {
		if !knownAlgorithms[name] {
			return fmt.Errorf("unknown algorithm: %s", name)
		}
	}
	if cfg.Experiment.Repeats <= 0 {
		return fmt.Errorf("experiment repeats must be positive, got %d", cfg.Experiment.Repeats)
	}
	if cfg.Experiment.Parallelism < 0 {
		return fmt.Errorf("experiment parallelism cannot be negative, got %d", cfg.Experiment.Parallelism)
	}

	if cfg.Demo.Items < 0 {
		return fmt.Errorf("demo items cannot be negative, got %d", cfg.Demo.Items)
	}
	if cfg.Demo.Capacity <= 0 {
		return fmt.Errorf("demo capacity must be positive, got %g", cfg.Demo.Capacity)
	}
	if cfg.Demo.MinWeight <= 0 || cfg.Demo.MaxWeight < cfg.Demo.MinWeight {
		return fmt.Errorf("invalid demo weight bounds [%d, %d]", cfg.Demo.MinWeight, cfg.Demo.MaxWeight)
	}
	if float64(cfg.Demo.MaxWeight) > cfg.Demo.Capacity {
		return fmt.Errorf("demo max_weight %d exceeds capacity %g", cfg.Demo.MaxWeight, cfg.Demo.Capacity)
	}
	return nil
}
