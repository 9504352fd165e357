// Package inference answers P(query | evidence) over a discrete Bayesian
// network by exact inference.
//
// Every algorithm takes the network's CPTs and a Query and returns a Result
// holding the probability together with the additions and multiplications
// spent computing it. Summing k terms costs k-1 additions and multiplying k
// terms costs k-1 multiplications. Solvers keep no state between calls, so
// one Solver may serve concurrent queries.
package inference

import (
	"fmt"
	"log/slog"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// Algorithm selects how a query is answered.
type Algorithm int

const (
	Lookup Algorithm = iota
	Enumeration
	VariableElimination
	VariableEliminationHeuristic
)

// ParseAlgorithm maps the numeric selector used in query files (0..3).
func ParseAlgorithm(n int) (Algorithm, error) {
	a := Algorithm(n)
	if a < Lookup || a > VariableEliminationHeuristic {
		return 0, fmt.Errorf("selector %d: %w", n, internalerr.ErrAlgorithmOutOfRange)
	}
	return a, nil
}

func (a Algorithm) String() string {
	switch a {
	case Lookup:
		return "lookup"
	case Enumeration:
		return "enumeration"
	case VariableElimination:
		return "variable-elimination"
	case VariableEliminationHeuristic:
		return "variable-elimination-heuristic"
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// Result is the answer to one query.
type Result struct {
	Probability     float64
	Additions       int
	Multiplications int
}

// Solver answers a query against a set of CPTs. CPTs are read, never modified.
type Solver interface {
	Answer(q Query, cpts []*network.CPT) (Result, error)
}

// Config carries optional collaborators for solvers.
type Config struct {
	Logger *slog.Logger // Optional, uses slog.Default() if nil
}

// For returns the solver implementing a.
func For(a Algorithm, cfg Config) (Solver, error) {
	switch a {
	case Lookup:
		return LookupSolver{}, nil
	case Enumeration:
		return EnumerationSolver{}, nil
	case VariableElimination:
		return EliminationSolver{Order: Lexicographic{}, Logger: cfg.Logger}, nil
	case VariableEliminationHeuristic:
		return EliminationSolver{Order: MinEstimatedSize{}, Logger: cfg.Logger}, nil
	}
	return nil, fmt.Errorf("solver for %d: %w", int(a), internalerr.ErrAlgorithmOutOfRange)
}
