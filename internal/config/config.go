/*
PURPOSE:
  Defines the configuration structure and loading logic for Grumpi Miner.
  One YAML file drives generation bounds, execution discipline, the judging
  model, and output locations.

REQUIREMENTS:
  User-specified:
  - Configure dimension range, per-dimension cap, total ceiling, sampling,
    worker count, and the Ollama target.
  - Allow custom dimensions to be declared alongside the built-in registry.

  Implementation-discovered:
  - Needs YAML parsing and an OLLAMA_API_KEY environment fallback.
  - A default-filename search keeps bare `grumpi-miner run` working.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Explicit error if a requested config file is missing or invalid; a
    missing default file silently falls back to DefaultConfig.

IMPLEMENTATION RULES:
  - Struct tags support yaml. Defaults should be sensible (60s timeout,
    4 workers, pairs only).

USAGE:
  cfg, err := config.Load("grumpi_miner.yaml")

RELATED FILES:
  - internal/cli/run.go - Applies flag overrides after loading.
  - internal/assets - Embedded example config.

MAINTENANCE:
  - Update DefaultConfig when adding tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/daryltucker/grumpi-miner/internal/dimension"
)

// Duration wraps time.Duration so YAML values like "30s" parse; yaml.v3
// has no native time.Duration support. Bare numbers are taken as seconds.
type Duration time.Duration

// Duration returns the wrapped time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration value %q", value.Value)
	}
	if parsed, err := time.ParseDuration(s); err == nil {
		*d = Duration(parsed)
		return nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(time.Duration(secs * float64(time.Second)))
		return nil
	}
	return fmt.Errorf("invalid duration %q", s)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config is the full Grumpi Miner configuration.
type Config struct {
	// Ollama target. Model empty means the built-in always-pass predicate.
	BaseURL        string   `yaml:"base_url"`
	APIKey         string   `yaml:"api_key"`
	Model          string   `yaml:"model"`
	SystemPrompt   string   `yaml:"system_prompt"`
	RequestTimeout Duration `yaml:"request_timeout"`

	// Generation bounds.
	SuiteName       string `yaml:"suite_name"`
	MinDimensions   int    `yaml:"min_dimensions"`
	MaxDimensions   int    `yaml:"max_dimensions"`
	MaxPerDimension int    `yaml:"max_per_dimension"`
	MaxTotal        int    `yaml:"max_total"`
	SamplesPerSize  int    `yaml:"samples_per_size"`

	// Execution discipline.
	Parallel    bool     `yaml:"parallel"`
	MaxWorkers  int      `yaml:"max_workers"`
	TestTimeout Duration `yaml:"test_timeout"`

	// Outputs.
	OutputDir  string `yaml:"output_dir"`
	OutputFile string `yaml:"output_file"`

	// Custom dimensions appended to (or, with ReplaceDefaults, substituted
	// for) the built-in registry.
	Dimensions      []dimension.Spec `yaml:"dimensions"`
	ReplaceDefaults bool             `yaml:"replace_defaults"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "http://localhost:11434",
		APIKey:          os.Getenv("OLLAMA_API_KEY"),
		SystemPrompt:    "You are a strict configuration compatibility judge.",
		RequestTimeout:  Duration(60 * time.Second),
		SuiteName:       "Combination Tests",
		MinDimensions:   2,
		MaxDimensions:   2,
		MaxPerDimension: 0,
		MaxTotal:        0,
		SamplesPerSize:  10,
		MaxWorkers:      4,
		TestTimeout:     0,
		OutputDir:       ".",
		OutputFile:      "suite_results",
	}
}

// Load reads configuration from a file. An empty path searches the default
// filenames and falls back to DefaultConfig when none exists.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"grumpi_miner.yaml", "grumpi-miner.yaml", "miner.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// BuildRegistry resolves the effective dimension registry: the defaults,
// extended by (or replaced with) the config-declared dimensions.
func (c *Config) BuildRegistry() *dimension.Registry {
	custom := make([]dimension.Dimension, 0, len(c.Dimensions))
	for _, spec := range c.Dimensions {
		custom = append(custom, spec.Dimension())
	}

	if c.ReplaceDefaults {
		return dimension.NewRegistry(custom...)
	}
	return dimension.Default().Extend(custom...)
}
