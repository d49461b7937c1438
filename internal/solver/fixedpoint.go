package solver

import (
	"log/slog"
	"math"

	"github.com/roach88/statecraft/internal/econ"
)

// Default solve bounds. pysolve-style: iterate until every variable
// is close, bail out after a bounded number of sweeps.
const (
	DefaultTolerance     = 1e-4
	DefaultMaxIterations = 100
)

// Equation computes one variable of the model for the current period.
//
// cur holds the current iterate (already-updated variables of this
// sweep included), prior holds the fully solved previous period, and
// params the exogenous parameter vector. Variables absent from a map
// read as zero, matching the model convention of a zero default.
type Equation struct {
	// Target is the variable this equation determines.
	Target string

	// Fn evaluates the equation. It must be a pure function of its
	// three inputs.
	Fn func(cur, prior, params econ.Vector) float64
}

// Options bound the iterative solve.
type Options struct {
	// Tolerance is the convergence threshold: the solve stops when the
	// maximum absolute change across all variables in one sweep falls
	// below it.
	Tolerance float64

	// MaxIterations caps the number of sweeps before the solve fails
	// with a ConvergenceError.
	MaxIterations int
}

// Option configures a FixedPoint solver.
type Option func(*FixedPoint)

// WithTolerance overrides the convergence threshold.
func WithTolerance(tol float64) Option {
	return func(f *FixedPoint) { f.opts.Tolerance = tol }
}

// WithMaxIterations overrides the iteration cap.
func WithMaxIterations(n int) Option {
	return func(f *FixedPoint) { f.opts.MaxIterations = n }
}

// FixedPoint solves an ordered equation set by Gauss-Seidel sweeps:
// each sweep evaluates the equations in declaration order, feeding
// updated values forward within the sweep, until the largest change
// drops below the tolerance.
//
// INVARIANTS:
//   - The equation slice order never changes after construction;
//     evaluation order is part of the solve's determinism.
//   - Neither the prior snapshot nor the parameter vector is written.
type FixedPoint struct {
	eqs  []Equation
	opts Options
}

// New creates a FixedPoint solver over the given equation set.
// The slice is copied to protect the declaration-order invariant.
func New(eqs []Equation, opts ...Option) *FixedPoint {
	eqsCopy := make([]Equation, len(eqs))
	copy(eqsCopy, eqs)

	f := &FixedPoint{
		eqs: eqsCopy,
		opts: Options{
			Tolerance:     DefaultTolerance,
			MaxIterations: DefaultMaxIterations,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SolvePeriod implements System.
func (f *FixedPoint) SolvePeriod(prior *econ.Snapshot, params econ.Vector) (*econ.Snapshot, error) {
	period := prior.Period + 1

	// Seed the iterate with the lagged values: stocks carry over and
	// flows start from their previous level, which is both a good
	// initial guess and the pysolve convention.
	cur := prior.Vars.Clone()
	frozen := params.Clone()

	residual := math.Inf(1)
	iters := 0
	for iters < f.opts.MaxIterations {
		iters++
		residual = 0
		for _, eq := range f.eqs {
			next := eq.Fn(cur, prior.Vars, frozen)
			if delta := math.Abs(next - cur[eq.Target]); delta > residual {
				residual = delta
			}
			cur[eq.Target] = next
		}
		if !isFinite(residual) {
			// Diverged. Report it as a convergence failure: the caller
			// cares that no consistent state exists for these inputs,
			// not which way the iteration blew up.
			slog.Debug("solve diverged", "period", period, "iteration", iters)
			return nil, &ConvergenceError{
				Period:     period,
				Iterations: iters,
				Residual:   residual,
				Tolerance:  f.opts.Tolerance,
			}
		}
		if residual < f.opts.Tolerance {
			slog.Debug("solve converged", "period", period, "iterations", iters, "residual", residual)
			return &econ.Snapshot{
				Period:     period,
				Vars:       cur,
				Params:     frozen,
				Iterations: iters,
				Residual:   residual,
			}, nil
		}
	}

	return nil, &ConvergenceError{
		Period:     period,
		Iterations: iters,
		Residual:   residual,
		Tolerance:  f.opts.Tolerance,
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
