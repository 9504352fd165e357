package network

import "github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"

// Size is the number of cells of a table over scope: the product of the
// cardinalities. An empty scope has one cell.
func Size(scope []Variable) int {
	n := 1
	for _, v := range scope {
		n *= v.Cardinality()
	}
	return n
}

// Offset encodes a as a mixed-radix table offset over scope. The last
// variable of scope is the fastest-varying digit. Bindings for variables
// outside scope are ignored.
func Offset(scope []Variable, a Assignment) (int, error) {
	index, multiplier := 0, 1
	for i := len(scope) - 1; i >= 0; i-- {
		v := scope[i]
		value, ok := a[v.name]
		if !ok {
			return -1, internalerr.Variable("table lookup", v.name, "", internalerr.ErrMissingAssignment)
		}
		digit, err := v.OutcomeIndex(value)
		if err != nil {
			return -1, err
		}
		index += digit * multiplier
		multiplier *= v.Cardinality()
	}
	return index, nil
}

// At decodes the i-th assignment over scope, the inverse of Offset. Walking
// i from 0 to Size(scope)-1 visits every assignment in table order.
func At(scope []Variable, i int) Assignment {
	a := make(Assignment, len(scope))
	for j := len(scope) - 1; j >= 0; j-- {
		v := scope[j]
		card := v.Cardinality()
		a[v.name] = v.outcomes[i%card]
		i /= card
	}
	return a
}
