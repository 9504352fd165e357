package inference

import (
	"fmt"
	"strings"

	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// Binding fixes one variable to one outcome.
type Binding struct {
	Variable string
	Value    string
}

// Query asks for P(Target | Evidence). Binding order is kept for display only.
type Query struct {
	Target    []Binding
	Evidence  []Binding
	Algorithm Algorithm
}

// IsJoint reports whether the query has no evidence.
func (q Query) IsJoint() bool { return len(q.Evidence) == 0 }

// TargetAssignment returns the queried bindings as an assignment.
func (q Query) TargetAssignment() network.Assignment { return toAssignment(q.Target) }

// EvidenceAssignment returns the observed bindings as an assignment.
func (q Query) EvidenceAssignment() network.Assignment { return toAssignment(q.Evidence) }

// Known returns the queried and observed bindings together.
func (q Query) Known() network.Assignment {
	return q.TargetAssignment().Merge(q.EvidenceAssignment())
}

// TargetNames lists the queried variables in order.
func (q Query) TargetNames() []string { return bindingNames(q.Target) }

// EvidenceNames lists the observed variables in order.
func (q Query) EvidenceNames() []string { return bindingNames(q.Evidence) }

// String renders the query in input-file syntax, e.g. "P(B=T|J=T,M=T),2".
func (q Query) String() string {
	var sb strings.Builder
	sb.WriteString("P(")
	writeBindings(&sb, q.Target)
	if !q.IsJoint() {
		sb.WriteString("|")
		writeBindings(&sb, q.Evidence)
	}
	fmt.Fprintf(&sb, "),%d", int(q.Algorithm))
	return sb.String()
}

func writeBindings(sb *strings.Builder, bs []Binding) {
	for i, b := range bs {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(b.Variable)
		sb.WriteString("=")
		sb.WriteString(b.Value)
	}
}

func toAssignment(bs []Binding) network.Assignment {
	a := make(network.Assignment, len(bs))
	for _, b := range bs {
		a[b.Variable] = b.Value
	}
	return a
}

func bindingNames(bs []Binding) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Variable
	}
	return out
}
