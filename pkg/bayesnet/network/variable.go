package network

import (
	"fmt"
	"slices"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

// Variable is a named discrete random variable. The order of its outcomes
// defines each outcome's index. Two variables with the same name are the
// same variable as far as the engine is concerned.
type Variable struct {
	name     string
	outcomes []string
}

// NewVariable creates a variable over the given ordered domain.
func NewVariable(name string, outcomes ...string) (Variable, error) {
	if name == "" {
		return Variable{}, fmt.Errorf("variable name is empty: %w", internalerr.ErrInvalidInput)
	}
	if len(outcomes) == 0 {
		return Variable{}, fmt.Errorf("variable %s has no outcomes: %w", name, internalerr.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(outcomes))
	for _, o := range outcomes {
		if o == "" {
			return Variable{}, fmt.Errorf("variable %s has an empty outcome: %w", name, internalerr.ErrInvalidInput)
		}
		if _, dup := seen[o]; dup {
			return Variable{}, fmt.Errorf("variable %s repeats outcome %q: %w", name, o, internalerr.ErrInvalidInput)
		}
		seen[o] = struct{}{}
	}
	return Variable{name: name, outcomes: slices.Clone(outcomes)}, nil
}

// MustVariable is NewVariable for fixtures; it panics on error.
func MustVariable(name string, outcomes ...string) Variable {
	v, err := NewVariable(name, outcomes...)
	if err != nil {
		panic(err)
	}
	return v
}

// Name returns the variable name.
func (v Variable) Name() string { return v.name }

// Outcomes returns a copy of the ordered domain.
func (v Variable) Outcomes() []string { return slices.Clone(v.outcomes) }

// Cardinality is the domain size.
func (v Variable) Cardinality() int { return len(v.outcomes) }

// Outcome returns the i-th outcome.
func (v Variable) Outcome(i int) string { return v.outcomes[i] }

// OutcomeIndex returns the position of value in the domain.
func (v Variable) OutcomeIndex(value string) (int, error) {
	idx := slices.Index(v.outcomes, value)
	if idx < 0 {
		return -1, internalerr.Variable("outcome lookup", v.name, value, internalerr.ErrInvalidOutcome)
	}
	return idx, nil
}

// SameDomain reports whether both variables list the same outcomes in the same order.
func (v Variable) SameDomain(o Variable) bool {
	return slices.Equal(v.outcomes, o.outcomes)
}

func (v Variable) String() string {
	return fmt.Sprintf("%s%v", v.name, v.outcomes)
}

// Names returns the names of vars in order.
func Names(vars []Variable) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.name
	}
	return out
}

// SortByName returns a copy of vars sorted by name ascending.
func SortByName(vars []Variable) []Variable {
	sorted := slices.Clone(vars)
	slices.SortStableFunc(sorted, func(a, b Variable) int {
		switch {
		case a.name < b.name:
			return -1
		case a.name > b.name:
			return 1
		}
		return 0
	})
	return sorted
}
