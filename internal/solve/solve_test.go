package solve

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/model"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/objective"
)

type scriptedSolver struct {
	out   Outcome
	delay time.Duration
}

func (s scriptedSolver) Solve(ctx context.Context, m *model.Model, limit time.Duration) Outcome {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
		}
	}
	return s.out
}

func TestTrackerSnapshotIsCopy(t *testing.T) {
	tr := NewTracker()
	tr.SetIterationsTotal(9)
	tr.SkipDominance()
	tr.SkipInfeasible()
	tr.Feasible(10 * time.Second)
	tr.Infeasible(3 * time.Second)
	tr.IterationCompleted()

	snap := tr.Snapshot()
	assert.Equal(t, 1, snap.SkipDominance)
	assert.Equal(t, 1, snap.SkipInfeasible)
	assert.Equal(t, 1, snap.CountFeasible)
	assert.Equal(t, 1, snap.CountInfeasible)
	assert.Equal(t, 10*time.Second, snap.TimeFeasible)
	assert.Equal(t, 3*time.Second, snap.TimeInfeasible)
	assert.Equal(t, 9, snap.IterationsTotal)
	assert.Equal(t, 1, snap.IterationsCompleted)

	// Mutating the copy leaves the tracker untouched.
	snap.CountFeasible = 100
	assert.Equal(t, 1, tr.Snapshot().CountFeasible)
}

func TestTrackerSolveIDs(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, 1, tr.NextSolveID())
	assert.Equal(t, 2, tr.NextSolveID())
	assert.Equal(t, 3, tr.NextSolveID())
}

func TestWatchdogPassesThrough(t *testing.T) {
	want := Outcome{Status: StatusOptimal, Z: objective.Vector{5, 10, -2, -1}}
	w := Watchdog{Inner: scriptedSolver{out: want}}

	out := w.Solve(context.Background(), nil, 50*time.Millisecond)
	assert.Equal(t, want, out)
	assert.True(t, out.HasSolution())
}

func TestWatchdogAbandonsLimitIgnoringSolver(t *testing.T) {
	w := Watchdog{
		Inner: scriptedSolver{out: Outcome{Status: StatusOptimal}, delay: time.Minute},
		Grace: 20 * time.Millisecond,
	}

	start := time.Now()
	out := w.Solve(context.Background(), nil, 10*time.Millisecond)
	require.Equal(t, StatusError, out.Status)
	assert.Contains(t, out.Message, "ignored time limit")
	assert.Less(t, time.Since(start), time.Second)
}

func TestWatchdogHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := Watchdog{Inner: sleepSolver{delay: time.Minute}}
	out := w.Solve(ctx, nil, time.Minute)
	assert.Equal(t, StatusError, out.Status)
}

// sleepSolver ignores its context on purpose.
type sleepSolver struct{ delay time.Duration }

func (s sleepSolver) Solve(context.Context, *model.Model, time.Duration) Outcome {
	time.Sleep(s.delay)
	return Outcome{Status: StatusOptimal}
}

func TestWatchdogRecoversPanic(t *testing.T) {
	w := Watchdog{Inner: panicSolver{}}
	out := w.Solve(context.Background(), nil, time.Second)
	require.Equal(t, StatusError, out.Status)
	assert.Contains(t, out.Message, "panic")
}

type panicSolver struct{}

func (panicSolver) Solve(context.Context, *model.Model, time.Duration) Outcome {
	panic("boom")
}
