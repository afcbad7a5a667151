package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnboundVariable is matched by errors.Is for any *UnboundVariableError.
	ErrUnboundVariable = errors.New("unbound variable")
	// ErrConstruction is matched by errors.Is for any *ConstructionError.
	ErrConstruction = errors.New("invalid construction")
)

// UnboundVariableError is returned by Eval when a variable has no value in the binding.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}

func (e *UnboundVariableError) Is(target error) bool {
	return target == ErrUnboundVariable
}

// ConstructionError is returned when a node cannot be built from its arguments.
type ConstructionError struct {
	Op      string
	Message string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct %s: %s", e.Op, e.Message)
}

func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

func newConstructionError(op, format string, args ...any) *ConstructionError {
	return &ConstructionError{
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}
