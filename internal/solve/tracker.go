package solve

import "time"

// Snapshot is a copy of the tracker's counters, safe to hand out.
type Snapshot struct {
	SkipDominance  int
	SkipInfeasible int

	CountFeasible   int
	CountInfeasible int

	TimeFeasible   time.Duration
	TimeInfeasible time.Duration

	IterationsTotal     int
	IterationsCompleted int
}

// Tracker is the run-scoped bookkeeping the estimator and enumerator mutate.
// It makes no decisions; it is passed explicitly so separate runs never share
// counters. Not safe for concurrent use; the enumeration loop is sequential.
type Tracker struct {
	solves int
	snap   Snapshot
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// NextSolveID numbers solver invocations across all stages of one run.
func (t *Tracker) NextSolveID() int {
	t.solves++
	return t.solves
}

func (t *Tracker) SkipDominance()  { t.snap.SkipDominance++ }
func (t *Tracker) SkipInfeasible() { t.snap.SkipInfeasible++ }

func (t *Tracker) Feasible(d time.Duration) {
	t.snap.CountFeasible++
	t.snap.TimeFeasible += d
}

func (t *Tracker) Infeasible(d time.Duration) {
	t.snap.CountInfeasible++
	t.snap.TimeInfeasible += d
}

func (t *Tracker) SetIterationsTotal(n int) { t.snap.IterationsTotal = n }
func (t *Tracker) IterationCompleted()      { t.snap.IterationsCompleted++ }

// Snapshot returns a copy; callers cannot mutate the tracker through it.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}
