package econ

import "fmt"

// Snapshot is the complete solved state of the model for one period:
// every stock and flow variable, keyed by name. A Snapshot is created
// exactly once - either from configuration (period 0) or by a
// successful solve - and never mutated afterwards.
//
// INVARIANTS:
//   - Period 0 snapshots carry no solve metadata (Iterations == 0,
//     Residual == 0): they are constructed, not solved.
//   - Solved snapshots record the iteration count and final residual
//     of the solve that produced them.
type Snapshot struct {
	// Period is the period number this snapshot describes (0 = initial).
	Period int

	// Vars maps every model variable name to its solved value.
	Vars Vector

	// Params echoes the parameter vector the solve ran under.
	// Empty for the initial snapshot.
	Params Vector

	// Iterations is the number of refinement sweeps the solve took.
	Iterations int

	// Residual is the maximum absolute change across all variables in
	// the final sweep.
	Residual float64
}

// NewInitial constructs the period-0 snapshot directly from the
// initial-state configuration. No solve is involved, so no solve
// metadata is attached.
func NewInitial(vars Vector) *Snapshot {
	return &Snapshot{Period: 0, Vars: vars.Clone()}
}

// Get returns the named variable's value.
// Missing variables are a programming error in the equation set or
// event definitions, caught at validation time; Get reports them
// loudly rather than defaulting to zero.
func (s *Snapshot) Get(name string) (float64, error) {
	v, ok := s.Vars[name]
	if !ok {
		return 0, fmt.Errorf("snapshot period %d: no variable %q", s.Period, name)
	}
	return v, nil
}

// History is the ordered, append-only sequence of snapshots for one
// game, indexed by period number.
//
// INVARIANT: h[i].Period == i for all i. The latest entry is always
// the last game-visible state; a failed solve appends nothing.
type History []*Snapshot

// Latest returns the most recent snapshot, or nil for an empty history.
func (h History) Latest() *Snapshot {
	if len(h) == 0 {
		return nil
	}
	return h[len(h)-1]
}

// At returns the snapshot for the given period.
func (h History) At(period int) (*Snapshot, error) {
	if period < 0 || period >= len(h) {
		return nil, fmt.Errorf("history: no snapshot for period %d (have 0..%d)", period, len(h)-1)
	}
	return h[period], nil
}

// Window returns the most recent n snapshots (fewer if the history is
// shorter). The returned slice aliases the history; entries are
// immutable so readers may hold it freely.
func (h History) Window(n int) []*Snapshot {
	if n >= len(h) {
		return h
	}
	return h[len(h)-n:]
}
