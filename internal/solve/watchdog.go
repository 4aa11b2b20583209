package solve

import (
	"context"
	"fmt"
	"time"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/model"
)

// DefaultGrace is the fixed overhead a solver may take beyond its time limit
// before the watchdog gives up on it.
const DefaultGrace = 2 * time.Second

// Watchdog wraps a Solver and enforces the time-limit contract: a backend
// that ignores its limit is abandoned after limit+grace and the solve is
// reported as a gateway error. A recovered panic in the backend is reported
// the same way rather than taking the whole enumeration down.
type Watchdog struct {
	Inner Solver
	Grace time.Duration
}

func (w Watchdog) Solve(ctx context.Context, m *model.Model, limit time.Duration) Outcome {
	grace := w.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}

	inner, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- Outcome{Status: StatusError, Message: fmt.Sprintf("solver panic: %v", r)}
			}
		}()
		ch <- w.Inner.Solve(inner, m, limit)
	}()

	timer := time.NewTimer(limit + grace)
	defer timer.Stop()

	select {
	case out := <-ch:
		return out
	case <-timer.C:
		// The backend goroutine is abandoned; cancel gives it a chance to
		// notice and die.
		return Outcome{
			Status:  StatusError,
			Message: fmt.Sprintf("solver ignored time limit %s (grace %s)", limit, grace),
		}
	case <-ctx.Done():
		return Outcome{Status: StatusError, Message: fmt.Sprintf("cancelled: %v", ctx.Err())}
	}
}
