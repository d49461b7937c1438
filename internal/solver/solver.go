package solver

import (
	"errors"
	"fmt"

	"github.com/roach88/statecraft/internal/econ"
)

// System solves one period of the model.
// Implemented by FixedPoint (production) and the stub systems in
// internal/testutil (tests).
type System interface {
	// SolvePeriod computes the state for period prior.Period+1 under
	// the given parameters. It must be pure in its inputs and must
	// return a ConvergenceError rather than a partially solved state.
	SolvePeriod(prior *econ.Snapshot, params econ.Vector) (*econ.Snapshot, error)
}

// ConvergenceError reports a solve that did not reach the fixed point
// within the iteration cap. It is recoverable: the caller's history is
// untouched and the same turn may be retried with different choices.
type ConvergenceError struct {
	// Period is the period the solve was trying to produce.
	Period int

	// Iterations is the number of sweeps performed before giving up.
	Iterations int

	// Residual is the maximum absolute change in the final sweep.
	Residual float64

	// Tolerance is the threshold the residual failed to reach.
	Tolerance float64
}

// Error implements the error interface.
func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("solve for period %d did not converge after %d iterations (residual %g, tolerance %g)",
		e.Period, e.Iterations, e.Residual, e.Tolerance)
}

// IsConvergenceError reports whether err is a ConvergenceError.
// Uses errors.As to handle wrapped errors.
func IsConvergenceError(err error) bool {
	var ce *ConvergenceError
	return errors.As(err, &ce)
}
