// Package solver defines the equation-system contract the turn engine
// depends on, and provides a fixed-point implementation of it.
//
// CONTRACT:
//
// SolvePeriod(prior, params) is pure with respect to its two inputs:
// the same prior snapshot and parameter vector always produce the
// same result, and neither input is mutated. The solve iterates all
// variables until the maximum change between successive sweeps falls
// below the tolerance, or fails with a ConvergenceError when the
// iteration cap is reached. A partially converged state is NEVER
// returned - the caller either gets a fully solved snapshot or an
// error, so history can only ever contain consistent periods.
//
// Lagged variables are read from the prior snapshot, never from the
// current iterate, which is what makes the solve a single-step
// transition: exactly one period advances per call, with no warm-up.
//
// The tolerance and iteration cap are configuration (Options), not
// constants: the calibration of the underlying model decides them.
package solver
