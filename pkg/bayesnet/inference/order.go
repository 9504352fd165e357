package inference

import (
	"math"
	"slices"

	"github.com/cognicore/bayesnet/pkg/bayesnet/factor"
)

// OrderStrategy picks the next hidden variable to sum out. hidden is never
// empty and the returned name must be one of its elements.
type OrderStrategy interface {
	Next(hidden []string, factors []*factor.Factor) string
}

// Lexicographic eliminates hidden variables in name order.
type Lexicographic struct{}

// Next implements OrderStrategy.
func (Lexicographic) Next(hidden []string, _ []*factor.Factor) string {
	return slices.Min(hidden)
}

// MinEstimatedSize greedily eliminates the variable whose elimination would
// build the smallest intermediate factor: the product of the cardinalities
// of every variable sharing a factor with it. The first variable in hidden
// wins ties.
type MinEstimatedSize struct{}

// Next implements OrderStrategy.
func (MinEstimatedSize) Next(hidden []string, factors []*factor.Factor) string {
	best, bestSize := hidden[0], math.MaxInt
	for _, name := range hidden {
		if size := estimateSize(name, factors); size < bestSize {
			best, bestSize = name, size
		}
	}
	return best
}

func estimateSize(name string, factors []*factor.Factor) int {
	cards := map[string]int{}
	for _, f := range factors {
		if !f.Has(name) {
			continue
		}
		for _, v := range f.Variables() {
			cards[v.Name()] = v.Cardinality()
		}
	}
	size := 1
	for _, card := range cards {
		size *= card
	}
	return size
}
