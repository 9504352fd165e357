package factor

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// Factor is a probability table over a set of variables kept in canonical
// order: sorted by name, the last variable fastest-varying in the table.
type Factor struct {
	vars  []network.Variable
	table []float64
}

// New builds a factor from variables in any order and a table laid out over
// that order. The table is re-derived for the canonical order.
func New(vars []network.Variable, table []float64) (*Factor, error) {
	if want := network.Size(vars); len(table) != want {
		return nil, fmt.Errorf("factor: table has %d entries, scope needs %d: %w",
			len(table), want, internalerr.ErrInvalidInput)
	}
	sorted := network.SortByName(vars)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Name() == sorted[i-1].Name() {
			return nil, fmt.Errorf("factor: variable %s repeated: %w", sorted[i].Name(), internalerr.ErrInvalidInput)
		}
	}

	f := &Factor{vars: sorted}
	if slices.Equal(network.Names(sorted), network.Names(vars)) {
		f.table = slices.Clone(table)
		return f, nil
	}

	f.table = make([]float64, len(table))
	for i := range f.table {
		src, err := network.Offset(vars, network.At(sorted, i))
		if err != nil {
			return nil, fmt.Errorf("factor: %w", err)
		}
		f.table[i] = table[src]
	}
	return f, nil
}

// Scalar is a factor with no variables and a single cell.
func Scalar(value float64) *Factor {
	return &Factor{table: []float64{value}}
}

// FromCPT converts a network CPT into a canonical factor. Each cell of the
// sorted layout is read back through the CPT's own declared-order decode.
func FromCPT(c *network.CPT) (*Factor, error) {
	sorted := network.SortByName(c.Scope())
	table := make([]float64, network.Size(sorted))
	for i := range table {
		p, err := c.ProbabilityOf(network.At(sorted, i))
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", c, err)
		}
		table[i] = p
	}
	return &Factor{vars: sorted, table: table}, nil
}

// Variables returns the scope in canonical order.
func (f *Factor) Variables() []network.Variable { return slices.Clone(f.vars) }

// Names returns the scope's variable names in canonical order.
func (f *Factor) Names() []string { return network.Names(f.vars) }

// Table returns a copy of the cells.
func (f *Factor) Table() []float64 { return slices.Clone(f.table) }

// Size is the number of cells; the join-ordering cost metric.
func (f *Factor) Size() int { return len(f.table) }

// Has reports whether the named variable is in scope.
func (f *Factor) Has(name string) bool {
	_, ok := f.lookup(name)
	return ok
}

// Variable returns the named variable from the scope.
func (f *Factor) Variable(name string) (network.Variable, error) {
	v, ok := f.lookup(name)
	if !ok {
		return network.Variable{}, internalerr.Variable("factor variable", name, "", internalerr.ErrVariableNotFound)
	}
	return v, nil
}

func (f *Factor) lookup(name string) (network.Variable, bool) {
	i, ok := slices.BinarySearchFunc(f.vars, name, func(v network.Variable, n string) int {
		return strings.Compare(v.Name(), n)
	})
	if !ok {
		return network.Variable{}, false
	}
	return f.vars[i], true
}

// ProbabilityOf returns the cell addressed by a, which must bind every
// variable in scope.
func (f *Factor) ProbabilityOf(a network.Assignment) (float64, error) {
	idx, err := network.Offset(f.vars, a)
	if err != nil {
		return 0, err
	}
	return f.table[idx], nil
}

// Assignment decodes the i-th cell's assignment.
func (f *Factor) Assignment(i int) network.Assignment {
	return network.At(f.vars, i)
}

// Assignments yields every assignment over the scope in table order. The
// sequence can be ranged over any number of times.
func (f *Factor) Assignments() iter.Seq2[int, network.Assignment] {
	return func(yield func(int, network.Assignment) bool) {
		for i := range f.table {
			if !yield(i, network.At(f.vars, i)) {
				return
			}
		}
	}
}

// nameWeight is the sum of the code points of every variable name in scope,
// the secondary join-ordering key.
func (f *Factor) nameWeight() int {
	sum := 0
	for _, v := range f.vars {
		for _, r := range v.Name() {
			sum += int(r)
		}
	}
	return sum
}

func (f *Factor) String() string {
	return fmt.Sprintf("f(%s)[%d]", strings.Join(f.Names(), ","), len(f.table))
}
