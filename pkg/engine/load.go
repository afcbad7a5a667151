package engine

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads a run configuration from a YAML file. Fields missing from
// the file keep their DefaultConfig values. Environment overrides are applied
// before validation.
//
// Example file:
//
//	objective: bowl
//	start:
//	  x: 3
//	  y: 1
//	descent:
//	  max_cycle: 200
//	  step_factor: 0.1
//	format: json
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides applies DESCENT_* environment variables on top of cfg.
// Unparseable values are ignored.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("DESCENT_OBJECTIVE"); val != "" {
		cfg.Objective = val
	}
	if val := os.Getenv("DESCENT_FORMAT"); val != "" {
		cfg.Format = val
	}
	if val := os.Getenv("DESCENT_MAX_CYCLE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Descent.MaxCycle = i
		}
	}
	if val := os.Getenv("DESCENT_STEP_FACTOR"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Descent.StepFactor = f
		}
	}
	if val := os.Getenv("DESCENT_GRAD_CRITERIA"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Descent.GradCriteria = f
		}
	}
	if val := os.Getenv("DESCENT_DIFF_CRITERIA"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Descent.DiffCriteria = f
		}
	}
}
