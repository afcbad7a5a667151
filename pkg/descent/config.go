package descent

import "fmt"

// Config holds the parameters of a steepest-descent run.
type Config struct {
	MaxCycle     int     `yaml:"max_cycle" json:"max_cycle"`
	GradCriteria float64 `yaml:"grad_criteria" json:"grad_criteria"`
	DiffCriteria float64 `yaml:"diff_criteria" json:"diff_criteria"`
	StepFactor   float64 `yaml:"step_factor" json:"step_factor"`
	MaxDepth     int     `yaml:"max_depth" json:"max_depth"` // 0 = unlimited
	RecordTrace  bool    `yaml:"record_trace" json:"record_trace"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxCycle:     30,
		GradCriteria: 0.05,
		DiffCriteria: 0.05,
		StepFactor:   0.1,
		MaxDepth:     256,
	}
}

// Validate reports the first invalid field as a *ConfigError. NaN fails
// every check.
func (c Config) Validate() error {
	if !(c.StepFactor > 0) {
		return NewConfigError("step_factor", fmt.Sprintf("must be positive, got %v", c.StepFactor))
	}
	if c.MaxCycle < 0 {
		return NewConfigError("max_cycle", fmt.Sprintf("must not be negative, got %d", c.MaxCycle))
	}
	if !(c.GradCriteria >= 0) {
		return NewConfigError("grad_criteria", fmt.Sprintf("must not be negative, got %v", c.GradCriteria))
	}
	if !(c.DiffCriteria >= 0) {
		return NewConfigError("diff_criteria", fmt.Sprintf("must not be negative, got %v", c.DiffCriteria))
	}
	if c.MaxDepth < 0 {
		return NewConfigError("max_depth", fmt.Sprintf("must not be negative, got %d", c.MaxDepth))
	}
	return nil
}
