package epsilon

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/model"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/objective"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/pareto"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/solve"
)

// BudgetMode selects how per-solve time limits are derived.
type BudgetMode int

const (
	// BudgetFixed gives every grid solve the same PerIterLimit.
	BudgetFixed BudgetMode = iota + 1
	// BudgetDynamic splits a TotalBudget over the remaining grid cells, so
	// time saved early is rolled forward to the harder slices at the end.
	BudgetDynamic
)

// Config tunes the enumeration loop.
type Config struct {
	// StepsPerObjective subdivides each [nadir, ideal] range into this many
	// steps, giving StepsPerObjective+1 grid values per objective.
	StepsPerObjective int

	Mode         BudgetMode
	TotalBudget  time.Duration // BudgetDynamic
	PerIterLimit time.Duration // BudgetFixed

	// CountSkippedInDivisor controls whether skipped grid cells shrink the
	// divisor of the dynamic allotment. When true (the default in
	// DefaultConfig) a skip frees its share of the budget for later solves.
	CountSkippedInDivisor bool

	Tolerance float64
}

func DefaultConfig() Config {
	return Config{
		StepsPerObjective:     4,
		Mode:                  BudgetDynamic,
		TotalBudget:           5 * time.Minute,
		CountSkippedInDivisor: true,
		Tolerance:             objective.DefaultTolerance,
	}
}

func (c *Config) Validate() error {
	if c.StepsPerObjective < 1 {
		return fmt.Errorf("steps per objective must be >= 1 (got %d)", c.StepsPerObjective)
	}
	switch c.Mode {
	case BudgetFixed:
		if c.PerIterLimit <= 0 {
			return fmt.Errorf("fixed budget mode needs a positive per-iteration limit")
		}
	case BudgetDynamic:
		if c.TotalBudget <= 0 {
			return fmt.Errorf("dynamic budget mode needs a positive total budget")
		}
	default:
		return fmt.Errorf("unknown budget mode %d", c.Mode)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be >= 0 (got %g)", c.Tolerance)
	}
	return nil
}

// Result is everything one full enumeration produced.
type Result struct {
	GStar  int
	Ideal  []float64
	Nadir  []float64
	Payoff [][]float64

	// Entries is the non-dominated front in archive insertion order.
	Entries []pareto.Entry

	Snapshot solve.Snapshot

	// Unexplored counts grid cells whose solve ended without a solution and
	// without an infeasibility proof. They are in neither the front nor the
	// infeasible record.
	Unexplored int

	Elapsed time.Duration
}

// Enumerator walks the epsilon grid between nadir and ideal, skipping cells
// already covered by the archive or implied infeasible, and solving the rest
// through the gateway.
type Enumerator struct {
	cfg Config
	gw  solve.Solver
	log *zap.Logger
}

func NewEnumerator(cfg Config, gw solve.Solver, log *zap.Logger) (*Enumerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if gw == nil {
		return nil, fmt.Errorf("enumerator needs a solver gateway")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Enumerator{cfg: cfg, gw: gw, log: log}, nil
}

// gridValues returns the epsilon values for one objective, from nadir to
// ideal inclusive. A degenerate range collapses to the single value nadir.
func gridValues(nadir, ideal float64, steps int, tol float64) []float64 {
	span := ideal - nadir
	if span <= tol {
		return []float64{nadir}
	}
	vals := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		vals[i] = nadir + float64(i)*span/float64(steps)
	}
	return vals
}

// Enumerate runs the grid loop for a fixed g* and payoff table, appending to
// the given tracker. Entries carry Proven=false when the solve timed out with
// an incumbent, so downstream reporting can flag uncertified points.
func (e *Enumerator) Enumerate(ctx context.Context, inst *defence.Instance,
	gStar int, pt *PayoffTable, tr *solve.Tracker) (*Result, error) {

	if len(pt.Ideal) != model.NumSecondary || len(pt.Nadir) != model.NumSecondary {
		return nil, errors.Wrap(ErrInvariantViolation, "payoff table has wrong arity")
	}

	grid := make([][]float64, model.NumSecondary)
	total := 1
	for k := range grid {
		grid[k] = gridValues(pt.Nadir[k], pt.Ideal[k], e.cfg.StepsPerObjective, e.cfg.Tolerance)
		total *= len(grid[k])
	}
	tr.SetIterationsTotal(total)

	archive := pareto.NewArchive(e.cfg.Tolerance)
	record := pareto.NewInfeasibleRecord(e.cfg.Tolerance)

	res := &Result{
		GStar:  gStar,
		Ideal:  append([]float64(nil), pt.Ideal...),
		Nadir:  append([]float64(nil), pt.Nadir...),
		Payoff: pt.Rows,
	}

	start := time.Now()
	budget := e.cfg.TotalBudget
	done := 0    // cells charged against the dynamic divisor
	visited := 0 // cells handled, skips included

	// Odometer over the grid, first objective slowest. idx[k] indexes
	// grid[k]; the last index is incremented first.
	idx := make([]int, model.NumSecondary)
loop:
	for {
		select {
		case <-ctx.Done():
			res.Entries = archive.Entries()
			res.Snapshot = tr.Snapshot()
			res.Elapsed = time.Since(start)
			return res, errors.Wrap(ctx.Err(), "enumeration cancelled")
		default:
		}

		eps := make(objective.Bounds, model.NumSecondary)
		for k := range eps {
			eps[k] = grid[k][idx[k]]
		}

		switch {
		case record.Implied(eps):
			tr.SkipInfeasible()
			if e.cfg.CountSkippedInDivisor {
				done++
			}

		case archive.Covers(eps):
			tr.SkipDominance()
			if e.cfg.CountSkippedInDivisor {
				done++
			}

		default:
			limit := e.cfg.PerIterLimit
			if e.cfg.Mode == BudgetDynamic {
				remaining := total - done
				if remaining < 1 {
					remaining = 1
				}
				limit = budget / time.Duration(remaining)
			}
			if limit <= 0 {
				// Budget exhausted: everything left stays unexplored.
				res.Unexplored += total - visited
				break loop
			}

			m, err := model.BuildEpsilon(inst, gStar, eps, pt.Ideal, pt.Nadir)
			if err != nil {
				return nil, err
			}

			id := tr.NextSolveID()
			out := e.gw.Solve(ctx, m, limit)
			if e.cfg.Mode == BudgetDynamic {
				budget -= out.Duration
			}
			done++

			e.log.Debug("grid solve",
				zap.Int("solve_id", id),
				zap.Float64s("eps", eps),
				zap.Stringer("status", out.Status),
				zap.Duration("limit", limit),
				zap.Duration("elapsed", out.Duration))

			switch out.Status {
			case solve.StatusOptimal, solve.StatusFeasible:
				tr.Feasible(out.Duration)
				tr.IterationCompleted()
				archive.Insert(pareto.Entry{
					Z:          out.Z,
					Bounds:     eps.Clone(),
					Proven:     out.Status == solve.StatusOptimal,
					Assignment: out.Assignment,
				})

			case solve.StatusInfeasible:
				tr.Infeasible(out.Duration)
				tr.IterationCompleted()
				record.Add(eps)

			case solve.StatusNoIncumbent:
				// Neither a point nor a proof. Leave the cell out of both
				// structures so nothing downstream trusts it.
				tr.IterationCompleted()
				res.Unexplored++

			default:
				// A failed solve is inconclusive too; the rest of the grid
				// is still worth walking.
				e.log.Error("grid solve failed",
					zap.Int("solve_id", id),
					zap.Float64s("eps", eps),
					zap.String("message", out.Message))
				tr.IterationCompleted()
				res.Unexplored++
			}
		}

		visited++
		if !advance(idx, grid) {
			break
		}
	}

	res.Entries = archive.Entries()
	res.Snapshot = tr.Snapshot()
	res.Elapsed = time.Since(start)
	return res, nil
}

// advance steps the odometer, last index fastest. Returns false after the
// final combination.
func advance(idx []int, grid [][]float64) bool {
	for k := len(idx) - 1; k >= 0; k-- {
		idx[k]++
		if idx[k] < len(grid[k]) {
			return true
		}
		idx[k] = 0
	}
	return false
}
