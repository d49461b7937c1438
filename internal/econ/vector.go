package econ

import "sort"

// Vector is a named set of numeric scalars: the exogenous parameters
// fed into one solve, or any other flat name->value mapping (the
// initial-state configuration uses the same shape).
//
// A Vector passed into the solver or the composer is treated as
// read-only by the callee; functions that derive a new Vector from an
// existing one must Clone first.
type Vector map[string]float64

// Clone returns an independent copy of the vector.
// Clone(nil) returns an empty, non-nil Vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Names returns the parameter names in sorted order.
// Sorted iteration keeps every consumer deterministic.
func (v Vector) Names() []string {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the named parameter exists in the vector.
func (v Vector) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Equal reports whether two vectors hold exactly the same names and
// bit-identical values. Used by tests to assert idempotent composition.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for k, val := range v {
		o, ok := other[k]
		if !ok || o != val {
			return false
		}
	}
	return true
}
