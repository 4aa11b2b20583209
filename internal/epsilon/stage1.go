package epsilon

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/model"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/solve"
)

// RunStage1 maximizes the number of scheduled defences and returns the value
// every later stage fixes. An uncertified incumbent is accepted with a
// warning: the front enumerated at that g is still made of valid schedules,
// just possibly below the true maximum count.
func RunStage1(ctx context.Context, gw solve.Solver, inst *defence.Instance,
	tr *solve.Tracker, limit time.Duration, log *zap.Logger) (int, error) {

	m, err := model.BuildStage1(inst)
	if err != nil {
		return 0, err
	}

	id := tr.NextSolveID()
	out := gw.Solve(ctx, m, limit)

	log.Info("stage1 solve",
		zap.Int("solve_id", id),
		zap.Stringer("status", out.Status),
		zap.Duration("elapsed", out.Duration),
		zap.Int64("nodes", out.Nodes))

	switch out.Status {
	case solve.StatusOptimal:
		tr.Feasible(out.Duration)
		return out.Z.Primary(), nil
	case solve.StatusFeasible:
		tr.Feasible(out.Duration)
		log.Warn("stage1 hit the time limit; using uncertified incumbent",
			zap.Int("g", out.Z.Primary()))
		return out.Z.Primary(), nil
	case solve.StatusInfeasible:
		tr.Infeasible(out.Duration)
		return 0, errors.Wrap(ErrModelInfeasible, "stage1")
	case solve.StatusNoIncumbent:
		return 0, errors.Wrapf(ErrNoIncumbent, "stage1 after %s", out.Duration)
	default:
		return 0, errors.Wrapf(ErrSolverGateway, "stage1: %s", out.Message)
	}
}
