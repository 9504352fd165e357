package network

import (
	"maps"
	"slices"
	"strings"
)

// Assignment maps variable names to outcomes. Key order carries no meaning;
// only the scope a table is decoded over does.
type Assignment map[string]string

// Clone returns a shallow copy.
func (a Assignment) Clone() Assignment {
	if a == nil {
		return Assignment{}
	}
	return maps.Clone(a)
}

// Merge returns a new assignment holding a's bindings overlaid with other's.
func (a Assignment) Merge(other Assignment) Assignment {
	out := make(Assignment, len(a)+len(other))
	maps.Copy(out, a)
	maps.Copy(out, other)
	return out
}

// With returns a copy of a with name bound to value.
func (a Assignment) With(name, value string) Assignment {
	out := make(Assignment, len(a)+1)
	maps.Copy(out, a)
	out[name] = value
	return out
}

// Restrict returns the bindings for the given names that a holds.
func (a Assignment) Restrict(names ...string) Assignment {
	out := make(Assignment, len(names))
	for _, n := range names {
		if v, ok := a[n]; ok {
			out[n] = v
		}
	}
	return out
}

func (a Assignment) String() string {
	keys := slices.Sorted(maps.Keys(a))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + a[k]
	}
	return strings.Join(parts, ",")
}
