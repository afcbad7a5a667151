package descent

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by errors.Is for any *ConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrTooDeep is returned when the objective exceeds Config.MaxDepth.
	ErrTooDeep = errors.New("expression too deep")
)

// ConfigError represents an invalid optimizer parameter.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}
