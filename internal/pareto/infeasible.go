package pareto

import (
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/objective"
)

// InfeasibleRecord stores epsilon bound tuples proven infeasible during a run.
// Feasibility is monotone under epsilon tightening, so any tuple at least as
// tight as a recorded one is infeasible too and its solve can be skipped.
//
// Only minimal (loosest) tuples are kept: a tuple tighter than a recorded one
// carries no extra information, and recording a looser tuple evicts the
// tighter ones it implies. That keeps the per-query scan short as the grid
// grows.
type InfeasibleRecord struct {
	tol    float64
	tuples []objective.Bounds
}

func NewInfeasibleRecord(tol float64) *InfeasibleRecord {
	if tol <= 0 {
		tol = objective.DefaultTolerance
	}
	return &InfeasibleRecord{tol: tol}
}

// Add records eps as proven infeasible. Tuples already implied by the record
// are not stored again.
func (r *InfeasibleRecord) Add(eps objective.Bounds) {
	for _, t := range r.tuples {
		if eps.TighterOrEqual(t, r.tol) {
			return
		}
	}
	kept := r.tuples[:0]
	for _, t := range r.tuples {
		if !t.TighterOrEqual(eps, r.tol) {
			kept = append(kept, t)
		}
	}
	r.tuples = append(kept, eps.Clone())
}

// Implied reports whether eps is at least as tight as some recorded
// infeasible tuple.
func (r *InfeasibleRecord) Implied(eps objective.Bounds) bool {
	for _, t := range r.tuples {
		if eps.TighterOrEqual(t, r.tol) {
			return true
		}
	}
	return false
}

func (r *InfeasibleRecord) Len() int { return len(r.tuples) }
