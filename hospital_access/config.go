package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives one pipeline run. Values from a YAML file can be
// overridden per-run by CLI flags.
type Config struct {
	Inputs   InputsConfig   `yaml:"inputs"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
}

type InputsConfig struct {
	Hospitals string `yaml:"hospitals"` // IPRESS registry CSV (Latin-1)
	Districts string `yaml:"districts"` // district polygons GeoJSON
	Centers   string `yaml:"centers"`   // population centers GeoJSON
}

type AnalysisConfig struct {
	Department string  `yaml:"department"`
	BufferKM   float64 `yaml:"buffer_km"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// DefaultConfig returns the policy defaults: Lima, 10 km buffer,
// outputs in the working directory.
func DefaultConfig() Config {
	return Config{
		Analysis: AnalysisConfig{
			Department: "Lima",
			BufferKM:   defaultBufferKM,
		},
		Output: OutputConfig{Dir: "."},
	}
}

// LoadConfig reads a YAML config file on top of the defaults. An empty
// path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Analysis.BufferKM < 0 {
		return cfg, fmt.Errorf("buffer_km must be non-negative, got %v", cfg.Analysis.BufferKM)
	}
	if cfg.Analysis.BufferKM == 0 {
		cfg.Analysis.BufferKM = defaultBufferKM
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	return cfg, nil
}

// Validate checks that all three input paths are set.
func (c *Config) Validate() error {
	switch {
	case c.Inputs.Hospitals == "":
		return fmt.Errorf("hospital registry path not set")
	case c.Inputs.Districts == "":
		return fmt.Errorf("district dataset path not set")
	case c.Inputs.Centers == "":
		return fmt.Errorf("population-center dataset path not set")
	}
	return nil
}
