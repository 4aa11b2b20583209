package epsilon

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/model"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/objective"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/solve"
)

// PayoffTable holds the per-objective optimization rows under g = g*, plus
// the ideal and approximate nadir points read off them, all in maximize-form.
type PayoffTable struct {
	// Rows[k] is the secondary objective vector of the solve that maximized
	// objective k (with a small perturbation on the others).
	Rows [][]float64

	Ideal []float64
	Nadir []float64
}

// ComputeIdealNadir builds the payoff table: one solve per secondary
// objective, each maximizing that objective under g = gStar with the others
// entering only through a perturbation too small to disturb the leading term.
// Ideal is the diagonal; the nadir estimate for objective k is the worst
// value of k seen across all rows.
func ComputeIdealNadir(ctx context.Context, gw solve.Solver, inst *defence.Instance,
	gStar int, tr *solve.Tracker, perRowLimit time.Duration, log *zap.Logger) (*PayoffTable, error) {

	pt := &PayoffTable{
		Rows:  make([][]float64, model.NumSecondary),
		Ideal: make([]float64, model.NumSecondary),
		Nadir: make([]float64, model.NumSecondary),
	}

	for k := 0; k < model.NumSecondary; k++ {
		m, err := model.BuildPayoffRow(inst, gStar, k)
		if err != nil {
			return nil, err
		}

		id := tr.NextSolveID()
		out := gw.Solve(ctx, m, perRowLimit)

		log.Info("payoff row solve",
			zap.Int("solve_id", id),
			zap.String("objective", model.SecondaryNames[k]),
			zap.Stringer("status", out.Status),
			zap.Duration("elapsed", out.Duration))

		switch out.Status {
		case solve.StatusOptimal, solve.StatusFeasible:
			tr.Feasible(out.Duration)
		case solve.StatusInfeasible:
			// g = g* was proven achievable in stage 1.
			tr.Infeasible(out.Duration)
			return nil, errors.Wrapf(ErrInvariantViolation,
				"payoff row %s infeasible at g=%d", model.SecondaryNames[k], gStar)
		case solve.StatusNoIncumbent:
			return nil, errors.Wrapf(ErrIdealNadir,
				"payoff row %s: no incumbent after %s", model.SecondaryNames[k], out.Duration)
		default:
			return nil, errors.Wrapf(ErrSolverGateway,
				"payoff row %s: %s", model.SecondaryNames[k], out.Message)
		}

		pt.Rows[k] = out.Z.Secondary()
	}

	for k := 0; k < model.NumSecondary; k++ {
		pt.Ideal[k] = pt.Rows[k][k]
		worst := pt.Rows[0][k]
		for r := 1; r < model.NumSecondary; r++ {
			if pt.Rows[r][k] < worst {
				worst = pt.Rows[r][k]
			}
		}
		pt.Nadir[k] = worst

		if pt.Ideal[k] < pt.Nadir[k]-objective.DefaultTolerance {
			return nil, errors.Wrapf(ErrInvariantViolation,
				"objective %s: ideal %.6g below nadir %.6g",
				model.SecondaryNames[k], pt.Ideal[k], pt.Nadir[k])
		}
	}

	log.Info("payoff table done",
		zap.Float64s("ideal", pt.Ideal),
		zap.Float64s("nadir", pt.Nadir))
	return pt, nil
}
