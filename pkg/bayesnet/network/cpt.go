package network

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

// CPT is a variable's conditional probability table: the network-native
// factor form. The table is laid out over Parents() in declared order as the
// slow digits, with the variable itself as the fastest-varying digit.
//
// A CPT is immutable once built, so queries share it by reference.
type CPT struct {
	variable Variable
	parents  []Variable
	table    []float64
}

// NewCPT builds a CPT and checks the table length against the scope.
func NewCPT(variable Variable, parents []Variable, table []float64) (*CPT, error) {
	if variable.Cardinality() == 0 {
		return nil, fmt.Errorf("cpt: variable has no domain: %w", internalerr.ErrInvalidInput)
	}
	seen := map[string]struct{}{variable.name: {}}
	for _, p := range parents {
		if _, dup := seen[p.name]; dup {
			return nil, fmt.Errorf("cpt %s: parent %s repeated or equal to the variable: %w",
				variable.name, p.name, internalerr.ErrInvalidInput)
		}
		seen[p.name] = struct{}{}
	}
	c := &CPT{
		variable: variable,
		parents:  slices.Clone(parents),
		table:    slices.Clone(table),
	}
	if want := Size(c.Scope()); len(table) != want {
		return nil, fmt.Errorf("cpt %s: table has %d entries, scope needs %d: %w",
			variable.name, len(table), want, internalerr.ErrInvalidInput)
	}
	return c, nil
}

// Variable returns the target variable.
func (c *CPT) Variable() Variable { return c.variable }

// Parents returns the parents in declared order.
func (c *CPT) Parents() []Variable { return slices.Clone(c.parents) }

// ParentNames returns the parent names in declared order.
func (c *CPT) ParentNames() []string { return Names(c.parents) }

// Table returns a copy of the flat table.
func (c *CPT) Table() []float64 { return slices.Clone(c.table) }

// Len is the number of table cells.
func (c *CPT) Len() int { return len(c.table) }

// Scope is the decode order of the table: parents then the variable.
func (c *CPT) Scope() []Variable {
	scope := make([]Variable, 0, len(c.parents)+1)
	scope = append(scope, c.parents...)
	return append(scope, c.variable)
}

// HasParent reports whether name is one of the declared parents.
func (c *CPT) HasParent(name string) bool {
	for _, p := range c.parents {
		if p.name == name {
			return true
		}
	}
	return false
}

// ProbabilityOf returns the cell addressed by a. a must bind the variable and
// every parent; extra bindings are ignored.
func (c *CPT) ProbabilityOf(a Assignment) (float64, error) {
	idx, err := Offset(c.Scope(), a)
	if err != nil {
		return 0, fmt.Errorf("cpt %s: %w", c.variable.name, err)
	}
	return c.table[idx], nil
}

// CheckColumns verifies that, for every parent assignment, the variable's
// outcome probabilities sum to one within tol.
func (c *CPT) CheckColumns(tol float64) error {
	card := c.variable.Cardinality()
	for row := 0; row*card < len(c.table); row++ {
		sum := floats.Sum(c.table[row*card : (row+1)*card])
		if math.Abs(sum-1) > tol {
			parents := At(c.parents, row)
			return fmt.Errorf("cpt %s: column for %s sums to %g: %w",
				c.variable.name, parents, sum, internalerr.ErrInvalidInput)
		}
	}
	return nil
}

func (c *CPT) String() string {
	var sb strings.Builder
	sb.WriteString("P(")
	sb.WriteString(c.variable.name)
	if len(c.parents) > 0 {
		sb.WriteString("|")
		sb.WriteString(strings.Join(c.ParentNames(), ","))
	}
	sb.WriteString(")")
	return sb.String()
}
