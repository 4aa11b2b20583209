// Package epsilon is the enumeration core: Stage 1 fixes the number of
// scheduled defences, the payoff table estimates ideal and nadir points for
// the secondary objectives, and the augmented epsilon-constraint loop walks
// the grid between them collecting the non-dominated front.
package epsilon

import "github.com/pkg/errors"

// Sentinel failures of the pipeline. Callers test with errors.Is; the
// wrapped message carries the stage and bounds that failed.
var (
	// ErrModelInfeasible: the instance admits no feasible schedule at all.
	ErrModelInfeasible = errors.New("model infeasible")

	// ErrNoIncumbent: a required solve hit its time limit before finding any
	// feasible point, so the run cannot proceed.
	ErrNoIncumbent = errors.New("no incumbent found within time limit")

	// ErrIdealNadir: a payoff-table row failed, leaving the grid undefined.
	ErrIdealNadir = errors.New("ideal/nadir computation failed")

	// ErrInvariantViolation: internal bookkeeping contradicted itself, e.g.
	// an estimated ideal below the corresponding nadir component.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrSolverGateway: the backing solver failed internally.
	ErrSolverGateway = errors.New("solver gateway error")
)
