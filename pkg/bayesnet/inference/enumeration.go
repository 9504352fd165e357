package inference

import (
	"fmt"
	"maps"

	"github.com/cognicore/bayesnet/pkg/bayesnet/factor"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// EnumerationSolver sums full joint probabilities over every assignment of
// the hidden variables, then normalises against the other assignments of the
// queried variables. Cost is exponential in the number of hidden variables.
type EnumerationSolver struct{}

// Answer implements Solver.
func (EnumerationSolver) Answer(q Query, cpts []*network.CPT) (Result, error) {
	if p, ok, err := extract(q, cpts); err != nil {
		return Result{}, fmt.Errorf("enumeration %s: %w", q, err)
	} else if ok {
		return Result{Probability: p}, nil
	}

	var c factor.Counter
	vars := network.Variables(cpts)
	known := q.Known()
	var hidden []network.Variable
	for _, v := range vars {
		if _, ok := known[v.Name()]; !ok {
			hidden = append(hidden, v)
		}
	}

	targetScope, err := scopeOf(q.TargetNames(), vars)
	if err != nil {
		return Result{}, fmt.Errorf("enumeration %s: %w", q, err)
	}
	evidence := q.EvidenceAssignment()
	own := q.TargetAssignment()

	numerator, err := sumHidden(own.Merge(evidence), hidden, cpts, &c)
	if err != nil {
		return Result{}, fmt.Errorf("enumeration %s: %w", q, err)
	}

	denominator := numerator
	for i := 0; i < network.Size(targetScope); i++ {
		other := network.At(targetScope, i)
		if maps.Equal(other, own) {
			continue
		}
		m, err := sumHidden(other.Merge(evidence), hidden, cpts, &c)
		if err != nil {
			return Result{}, fmt.Errorf("enumeration %s: %w", q, err)
		}
		denominator += m
		c.Add(1)
	}
	if denominator == 0 {
		return Result{}, fmt.Errorf("enumeration %s: %w", q, internalerr.ErrImpossibleEvidence)
	}

	return Result{
		Probability:     numerator / denominator,
		Additions:       c.Additions,
		Multiplications: c.Multiplications,
	}, nil
}

// sumHidden sums the joint probability of fixed extended by every assignment
// of hidden: k terms, k-1 additions.
func sumHidden(fixed network.Assignment, hidden []network.Variable, cpts []*network.CPT, c *factor.Counter) (float64, error) {
	k := network.Size(hidden)
	var sum float64
	for i := 0; i < k; i++ {
		p, err := jointProbability(fixed.Merge(network.At(hidden, i)), cpts, c)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			sum = p
			continue
		}
		sum += p
	}
	c.Add(k - 1)
	return sum, nil
}

// scopeOf resolves names against vars, keeping the order of names.
func scopeOf(names []string, vars []network.Variable) ([]network.Variable, error) {
	byName := make(map[string]network.Variable, len(vars))
	for _, v := range vars {
		byName[v.Name()] = v
	}
	scope := make([]network.Variable, 0, len(names))
	for _, n := range names {
		v, ok := byName[n]
		if !ok {
			return nil, internalerr.Variable("resolve query", n, "", internalerr.ErrVariableNotFound)
		}
		scope = append(scope, v)
	}
	return scope, nil
}
