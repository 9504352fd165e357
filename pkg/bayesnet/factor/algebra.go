package factor

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// Join returns the pointwise product of f1 and f2 over the union of their
// scopes. Every output cell costs one multiplication.
func Join(f1, f2 *Factor, c *Counter) (*Factor, error) {
	union := make([]network.Variable, 0, len(f1.vars)+len(f2.vars))
	union = append(union, f1.vars...)
	for _, v := range f2.vars {
		if !f1.Has(v.Name()) {
			union = append(union, v)
		}
	}
	union = network.SortByName(union)

	table := make([]float64, network.Size(union))
	for i := range table {
		a := network.At(union, i)
		p1, err := f1.ProbabilityOf(a)
		if err != nil {
			return nil, fmt.Errorf("join %s with %s: %w", f1, f2, err)
		}
		p2, err := f2.ProbabilityOf(a)
		if err != nil {
			return nil, fmt.Errorf("join %s with %s: %w", f1, f2, err)
		}
		table[i] = p1 * p2
	}
	c.Mul(len(table))
	return &Factor{vars: union, table: table}, nil
}

// JoinAll multiplies factors together, always joining the two smallest
// first. Ties on size are broken by the code-point sum of the variable
// names, then by the names themselves, so the join order does not depend on
// the order factors were discovered in.
func JoinAll(factors []*Factor, c *Counter) (*Factor, error) {
	if len(factors) == 0 {
		return nil, fmt.Errorf("join: no factors: %w", internalerr.ErrInvalidInput)
	}
	pool := slices.Clone(factors)
	for len(pool) > 1 {
		slices.SortStableFunc(pool, joinOrder)
		joined, err := Join(pool[0], pool[1], c)
		if err != nil {
			return nil, err
		}
		pool = append(pool[2:], joined)
	}
	return pool[0], nil
}

func joinOrder(a, b *Factor) int {
	if d := cmp.Compare(a.Size(), b.Size()); d != 0 {
		return d
	}
	if d := cmp.Compare(a.nameWeight(), b.nameWeight()); d != 0 {
		return d
	}
	return strings.Compare(strings.Join(a.Names(), ","), strings.Join(b.Names(), ","))
}

// Restrict fixes the evidence variables that appear in f to their observed
// values and drops them from the scope. No arithmetic is counted.
func Restrict(f *Factor, evidence network.Assignment) (*Factor, error) {
	kept := make([]network.Variable, 0, len(f.vars))
	fixed := network.Assignment{}
	for _, v := range f.vars {
		if value, ok := evidence[v.Name()]; ok {
			fixed[v.Name()] = value
			continue
		}
		kept = append(kept, v)
	}
	if len(fixed) == 0 {
		return f, nil
	}

	table := make([]float64, network.Size(kept))
	for i := range table {
		p, err := f.ProbabilityOf(network.At(kept, i).Merge(fixed))
		if err != nil {
			return nil, fmt.Errorf("restrict %s: %w", f, err)
		}
		table[i] = p
	}
	return &Factor{vars: kept, table: table}, nil
}

// Eliminate sums the named variable out of f. Each output cell sums one term
// per outcome, the first term seeding the sum, so it costs cardinality-1
// additions.
func Eliminate(f *Factor, name string, c *Counter) (*Factor, error) {
	target, err := f.Variable(name)
	if err != nil {
		return nil, fmt.Errorf("eliminate: %w", err)
	}
	remaining := make([]network.Variable, 0, len(f.vars)-1)
	for _, v := range f.vars {
		if v.Name() != name {
			remaining = append(remaining, v)
		}
	}

	card := target.Cardinality()
	table := make([]float64, network.Size(remaining))
	for i := range table {
		a := network.At(remaining, i)
		var sum float64
		for k := 0; k < card; k++ {
			p, err := f.ProbabilityOf(a.With(name, target.Outcome(k)))
			if err != nil {
				return nil, fmt.Errorf("eliminate %s from %s: %w", name, f, err)
			}
			if k == 0 {
				sum = p
				continue
			}
			sum += p
		}
		table[i] = sum
		c.Add(card - 1)
	}
	return &Factor{vars: remaining, table: table}, nil
}

// Normalize scales f so its cells sum to one. The summation is
// post-processing and is not counted.
func Normalize(f *Factor) (*Factor, error) {
	total := floats.Sum(f.table)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("normalize %s: mass %g: %w", f, total, internalerr.ErrImpossibleEvidence)
	}
	table := slices.Clone(f.table)
	floats.Scale(1/total, table)
	return &Factor{vars: slices.Clone(f.vars), table: table}, nil
}
