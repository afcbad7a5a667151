package engine

import (
	"fmt"

	"github.com/wildfunctions/steepest_descent/pkg/descent"
	"github.com/wildfunctions/steepest_descent/pkg/expr"
	"github.com/wildfunctions/steepest_descent/pkg/objective"
)

// Config holds all parameters for an optimization run.
type Config struct {
	Objective string         `yaml:"objective" json:"objective"`
	Start     expr.Binding   `yaml:"start,omitempty" json:"start,omitempty"` // overrides the objective's start point
	Descent   descent.Config `yaml:"descent" json:"descent"`
	Format    string         `yaml:"format" json:"format"` // "text" or "json"
	Verbose   bool           `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Objective: "quadratic",
		Descent:   descent.DefaultConfig(),
		Format:    "text",
	}
}

// ApplyDefaults fills in fields left empty by a config file.
func ApplyDefaults(cfg *Config) {
	if cfg.Objective == "" {
		cfg.Objective = "quadratic"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
}

// Validate checks the config against the objective registry and the optimizer rules.
func Validate(cfg *Config) error {
	switch cfg.Format {
	case "text", "json":
	default:
		return descent.NewConfigError("format", fmt.Sprintf("must be text or json, got %q", cfg.Format))
	}

	obj, err := objective.Get(cfg.Objective)
	if err != nil {
		return descent.NewConfigError("objective", err.Error())
	}

	known := map[string]bool{}
	for _, v := range obj.Vars() {
		known[v.Name] = true
	}
	for name := range cfg.Start {
		if !known[name] {
			return descent.NewConfigError("start", fmt.Sprintf("objective %s has no variable %q", obj.Name(), name))
		}
	}

	return cfg.Descent.Validate()
}
