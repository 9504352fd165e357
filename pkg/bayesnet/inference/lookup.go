package inference

import (
	"fmt"

	"github.com/cognicore/bayesnet/pkg/bayesnet/factor"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// LookupSolver multiplies one cell from every CPT. The query and evidence
// together must assign every network variable; the result is their joint
// probability.
type LookupSolver struct{}

// Answer implements Solver.
func (LookupSolver) Answer(q Query, cpts []*network.CPT) (Result, error) {
	var c factor.Counter
	p, err := jointProbability(q.Known(), cpts, &c)
	if err != nil {
		return Result{}, fmt.Errorf("lookup %s: %w", q, err)
	}
	return Result{Probability: p, Additions: c.Additions, Multiplications: c.Multiplications}, nil
}

// jointProbability is the chain-rule product over all cpts for a full
// assignment: len(cpts)-1 multiplications.
func jointProbability(a network.Assignment, cpts []*network.CPT, c *factor.Counter) (float64, error) {
	if len(cpts) == 0 {
		return 0, fmt.Errorf("joint probability of empty network: %w", internalerr.ErrInvalidInput)
	}
	product := 1.0
	for i, cpt := range cpts {
		relevant := a.Restrict(append(cpt.ParentNames(), cpt.Variable().Name())...)
		p, err := cpt.ProbabilityOf(relevant)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			product = p
			continue
		}
		product *= p
	}
	c.Mul(len(cpts) - 1)
	return product, nil
}
