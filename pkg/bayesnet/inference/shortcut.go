package inference

import "github.com/cognicore/bayesnet/pkg/bayesnet/network"

// extract answers q straight from a CPT row when q asks for a single
// variable given exactly that variable's declared parents. ok is false when
// no CPT matches.
func extract(q Query, cpts []*network.CPT) (p float64, ok bool, err error) {
	if len(q.Target) != 1 {
		return 0, false, nil
	}
	target := q.Target[0]
	evidence := q.EvidenceAssignment()

	for _, c := range cpts {
		if c.Variable().Name() != target.Variable {
			continue
		}
		parents := c.ParentNames()
		if len(parents) != len(evidence) {
			continue
		}
		matched := true
		for _, name := range parents {
			if _, present := evidence[name]; !present {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		p, err := c.ProbabilityOf(evidence.With(target.Variable, target.Value))
		if err != nil {
			return 0, false, err
		}
		return p, true, nil
	}
	return 0, false, nil
}
