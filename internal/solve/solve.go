// Package solve is the narrow gateway between the enumeration core and
// whatever exact engine backs it. The core only ever sees Solver and Outcome;
// swapping the engine for an external MILP binding touches nothing upstream.
package solve

import (
	"context"
	"fmt"
	"time"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/model"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/objective"
)

type Status int

const (
	// StatusOptimal: the search space was exhausted; Z is the certified optimum.
	StatusOptimal Status = iota + 1
	// StatusFeasible: the time limit struck with an incumbent; Z is not
	// certified optimal but is a valid feasible point.
	StatusFeasible
	// StatusInfeasible: the search space was exhausted with no feasible point.
	StatusInfeasible
	// StatusNoIncumbent: the time limit struck before any feasible point was
	// found. Proves nothing about feasibility.
	StatusNoIncumbent
	// StatusError: the solver failed internally; Message explains.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusNoIncumbent:
		return "time_limit_no_solution"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is one solve's result. Z and Assignment are set only for
// StatusOptimal and StatusFeasible; Z is the true objective vector, free of
// any augmentation contribution.
type Outcome struct {
	Status     Status
	Z          objective.Vector
	Assignment *defence.Assignment
	Message    string

	Duration time.Duration
	Nodes    int64
}

// HasSolution reports whether the outcome carries a usable point.
func (o Outcome) HasSolution() bool {
	return o.Status == StatusOptimal || o.Status == StatusFeasible
}

// Solver is the gateway contract: solve the model within the time limit and
// return control no later than the limit plus a small fixed overhead.
type Solver interface {
	Solve(ctx context.Context, m *model.Model, limit time.Duration) Outcome
}
