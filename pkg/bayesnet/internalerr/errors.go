package internalerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Decode failures inside the engine. Correct ancestor pruning and
	// evidence restriction keep these from firing on valid queries.
	ErrMissingAssignment = errors.New("missing assignment")
	ErrInvalidOutcome    = errors.New("invalid outcome")
	ErrVariableNotFound  = errors.New("variable not found")

	ErrAlgorithmOutOfRange = errors.New("algorithm selector out of range")
	ErrImpossibleEvidence  = errors.New("evidence has zero probability")
)

// VariableError reports which variable (and value) an operation tripped over.
type VariableError struct {
	Op       string
	Variable string
	Value    string
	Err      error
}

func (e *VariableError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %v: %s=%q", e.Op, e.Err, e.Variable, e.Value)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Variable)
}

func (e *VariableError) Unwrap() error { return e.Err }

// Variable builds a VariableError wrapping err.
func Variable(op, variable, value string, err error) error {
	return &VariableError{Op: op, Variable: variable, Value: value, Err: err}
}
