package network

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

// Network is a loaded Bayesian network: one CPT per variable, kept in
// declaration order.
type Network struct {
	cpts   []*CPT
	byName map[string]*CPT
}

// New assembles a network and checks its structure: one CPT per variable,
// parents that are themselves network variables with the same domain, and
// no directed cycles.
func New(cpts []*CPT) (*Network, error) {
	n := &Network{
		cpts:   slices.Clone(cpts),
		byName: make(map[string]*CPT, len(cpts)),
	}
	for _, c := range cpts {
		if c == nil {
			return nil, fmt.Errorf("network: nil cpt: %w", internalerr.ErrInvalidInput)
		}
		name := c.variable.name
		if _, dup := n.byName[name]; dup {
			return nil, fmt.Errorf("network: variable %s defined twice: %w", name, internalerr.ErrInvalidInput)
		}
		n.byName[name] = c
	}
	for _, c := range cpts {
		for _, p := range c.parents {
			pc, ok := n.byName[p.name]
			if !ok {
				return nil, fmt.Errorf("network: %s has undeclared parent %s: %w",
					c.variable.name, p.name, internalerr.ErrInvalidInput)
			}
			if !pc.variable.SameDomain(p) {
				return nil, fmt.Errorf("network: parent %s of %s disagrees with its declared domain: %w",
					p.name, c.variable.name, internalerr.ErrInvalidInput)
			}
		}
	}
	if err := n.checkAcyclic(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Network) checkAcyclic() error {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(n.cpts))
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case active:
			return fmt.Errorf("network: cycle through %s: %w", name, internalerr.ErrInvalidInput)
		case done:
			return nil
		}
		state[name] = active
		for _, p := range n.byName[name].parents {
			if err := visit(p.name); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}
	for _, c := range n.cpts {
		if err := visit(c.variable.name); err != nil {
			return err
		}
	}
	return nil
}

// CPTs returns the CPTs in declaration order. The CPTs are shared, not copied.
func (n *Network) CPTs() []*CPT { return slices.Clone(n.cpts) }

// CPT returns the table for the named variable.
func (n *Network) CPT(name string) (*CPT, bool) {
	c, ok := n.byName[name]
	return c, ok
}

// Variables returns every network variable in declaration order.
func (n *Network) Variables() []Variable {
	return Variables(n.cpts)
}

// Variable looks a variable up by name.
func (n *Network) Variable(name string) (Variable, bool) {
	c, ok := n.byName[name]
	if !ok {
		return Variable{}, false
	}
	return c.variable, true
}

// Len is the number of variables.
func (n *Network) Len() int { return len(n.cpts) }

// Validate checks every CPT column sums to one within tol. All failures are
// reported together.
func (n *Network) Validate(tol float64) error {
	var errs []error
	for _, c := range n.cpts {
		if err := c.CheckColumns(tol); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Variables lists the target variables of cpts in order.
func Variables(cpts []*CPT) []Variable {
	out := make([]Variable, len(cpts))
	for i, c := range cpts {
		out[i] = c.variable
	}
	return out
}

// Ancestors returns the closure of names under the declared-parent relation
// of cpts: the named variables plus every variable reachable by following
// parent edges. It iterates to a fixed point.
func Ancestors(cpts []*CPT, names ...string) map[string]struct{} {
	closure := make(map[string]struct{}, len(names))
	for _, n := range names {
		closure[n] = struct{}{}
	}
	for changed := true; changed; {
		changed = false
		for _, c := range cpts {
			if _, ok := closure[c.variable.name]; !ok {
				continue
			}
			for _, p := range c.parents {
				if _, ok := closure[p.name]; !ok {
					closure[p.name] = struct{}{}
					changed = true
				}
			}
		}
	}
	return closure
}
