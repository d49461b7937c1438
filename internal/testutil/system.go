package testutil

import (
	"sync"

	"github.com/roach88/statecraft/internal/econ"
	"github.com/roach88/statecraft/internal/solver"
)

// PassthroughSystem is an equation system that does no solving at all.
//
// Each call copies the effective parameter vector straight into the new
// snapshot's variables (and into its parameter echo), so a test can read
// back exactly which parameters the turn controller composed for the
// period. Variables present in the prior snapshot but absent from the
// parameter vector carry forward unchanged.
//
// This makes hand-computing expected snapshots trivial: the same seed and
// the same choices always produce byte-identical histories.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type PassthroughSystem struct {
	mu    sync.Mutex
	calls int
}

// NewPassthroughSystem creates a new passthrough system with zero calls.
func NewPassthroughSystem() *PassthroughSystem {
	return &PassthroughSystem{}
}

// SolvePeriod implements solver.System.
//
// The returned snapshot has Period = prior.Period+1, variables seeded from
// the prior snapshot and overwritten by every parameter, and Params set to
// a copy of the parameter vector.
func (s *PassthroughSystem) SolvePeriod(prior *econ.Snapshot, params econ.Vector) (*econ.Snapshot, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	vars := prior.Vars.Clone()
	for name, v := range params {
		vars[name] = v
	}
	return &econ.Snapshot{
		Period:     prior.Period + 1,
		Vars:       vars,
		Params:     params.Clone(),
		Iterations: 1,
		Residual:   0,
	}, nil
}

// Calls returns how many times SolvePeriod has been invoked.
func (s *PassthroughSystem) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Reset resets the call counter to 0.
//
// Used for test reuse.
func (s *PassthroughSystem) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = 0
}

// FailingSystem is an equation system that never converges.
//
// Every call returns a *solver.ConvergenceError carrying the period it was
// asked to solve. Tests use it to exercise the convergence-failure boundary:
// a failed advance must leave the session's history and deck untouched.
type FailingSystem struct {
	mu    sync.Mutex
	calls int
}

// NewFailingSystem creates a new failing system with zero calls.
func NewFailingSystem() *FailingSystem {
	return &FailingSystem{}
}

// SolvePeriod implements solver.System. It always fails.
func (s *FailingSystem) SolvePeriod(prior *econ.Snapshot, params econ.Vector) (*econ.Snapshot, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	return nil, &solver.ConvergenceError{
		Period:     prior.Period + 1,
		Iterations: 1,
		Residual:   1,
		Tolerance:  0,
	}
}

// Calls returns how many times SolvePeriod has been invoked.
func (s *FailingSystem) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
