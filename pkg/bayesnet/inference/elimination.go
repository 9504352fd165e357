package inference

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/cognicore/bayesnet/pkg/bayesnet/factor"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// EliminationSolver runs variable elimination. Only CPTs of ancestors of
// the query and evidence variables take part; hidden ancestors are summed
// out one at a time in the order Order picks.
type EliminationSolver struct {
	Order  OrderStrategy
	Logger *slog.Logger // Optional, uses slog.Default() if nil
}

func (s EliminationSolver) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Answer implements Solver.
func (s EliminationSolver) Answer(q Query, cpts []*network.CPT) (Result, error) {
	if p, ok, err := extract(q, cpts); err != nil {
		return Result{}, fmt.Errorf("elimination %s: %w", q, err)
	} else if ok {
		return Result{Probability: p}, nil
	}
	order := s.Order
	if order == nil {
		order = Lexicographic{}
	}
	log := s.logger()

	var c factor.Counter
	ancestors := network.Ancestors(cpts, append(q.TargetNames(), q.EvidenceNames()...)...)
	evidence := q.EvidenceAssignment()
	known := q.Known()

	// CPTs are immutable and shared; every factor below is freshly derived.
	var factors []*factor.Factor
	var hidden []string
	for _, cpt := range cpts {
		name := cpt.Variable().Name()
		if _, ok := ancestors[name]; !ok {
			continue
		}
		f, err := factor.FromCPT(cpt)
		if err != nil {
			return Result{}, fmt.Errorf("elimination %s: %w", q, err)
		}
		if f, err = factor.Restrict(f, evidence); err != nil {
			return Result{}, fmt.Errorf("elimination %s: %w", q, err)
		}
		factors = append(factors, f)
		if _, ok := known[name]; !ok {
			hidden = append(hidden, name)
		}
	}
	factors = slices.DeleteFunc(factors, func(f *factor.Factor) bool {
		return !mentionsAny(f, ancestors)
	})
	log.Debug("elimination prepared", "query", q.String(), "factors", len(factors), "hidden", hidden)

	for len(hidden) > 0 {
		h := order.Next(hidden, factors)
		if !slices.Contains(hidden, h) {
			return Result{}, fmt.Errorf("elimination %s: order picked %q: %w", q, h, internalerr.ErrVariableNotFound)
		}
		hidden = slices.DeleteFunc(hidden, func(n string) bool { return n == h })

		var related, rest []*factor.Factor
		for _, f := range factors {
			if f.Has(h) {
				related = append(related, f)
			} else {
				rest = append(rest, f)
			}
		}
		if len(related) == 0 {
			log.Debug("hidden variable in no factor", "variable", h)
			continue
		}

		joined, err := factor.JoinAll(related, &c)
		if err != nil {
			return Result{}, fmt.Errorf("elimination %s: %w", q, err)
		}
		reduced, err := factor.Eliminate(joined, h, &c)
		if err != nil {
			return Result{}, fmt.Errorf("elimination %s: %w", q, err)
		}
		log.Debug("eliminated", "variable", h, "joined", joined.String(), "result", reduced.String())
		factors = append(rest, reduced)
	}

	final, err := factor.JoinAll(factors, &c)
	if err != nil {
		return Result{}, fmt.Errorf("elimination %s: %w", q, err)
	}
	if final, err = factor.Normalize(final); err != nil {
		return Result{}, fmt.Errorf("elimination %s: %w", q, err)
	}

	p, err := extractFinal(final, known, &c)
	if err != nil {
		return Result{}, fmt.Errorf("elimination %s: %w", q, err)
	}
	return Result{Probability: p, Additions: c.Additions, Multiplications: c.Multiplications}, nil
}

// extractFinal reads the answer from the normalised final factor, summing
// over any of its variables the query leaves unassigned.
func extractFinal(final *factor.Factor, known network.Assignment, c *factor.Counter) (float64, error) {
	var open []network.Variable
	for _, v := range final.Variables() {
		if _, ok := known[v.Name()]; !ok {
			open = append(open, v)
		}
	}
	if len(open) == 0 {
		return final.ProbabilityOf(known)
	}

	k := network.Size(open)
	var sum float64
	for i := 0; i < k; i++ {
		p, err := final.ProbabilityOf(known.Merge(network.At(open, i)))
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

func mentionsAny(f *factor.Factor, names map[string]struct{}) bool {
	for _, n := range f.Names() {
		if _, ok := names[n]; ok {
			return true
		}
	}
	return false
}
