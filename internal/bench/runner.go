// Package bench produces the scalability tables: generate an instance per
// (size, knobs, seed) cell, run the full enumeration pipeline on it, and
// collect one CSV row per run.
package bench

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/epsilon"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/gen"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/solve"
)

// Case is one table cell: a size preset, a knob combination and the seed of
// the generated instance.
type Case struct {
	Preset string
	Size   gen.Size
	Knobs  gen.Knobs
	Seed   int64
}

// Record is one CSV row of a table.
type Record struct {
	RunID  string
	Preset string
	Seed   int64

	Members  int
	Defences int

	EligibilityMode int
	PMemberZero     float64
	PRoomZero       float64

	GStar     int
	FrontSize int

	SkipDominance  int
	SkipInfeasible int

	CountFeasible   int
	CountInfeasible int

	TimeFeasibleMs   float64
	TimeInfeasibleMs float64

	Unexplored int
	ElapsedMs  float64
}

// Runner drives the pipeline for each case with a shared gateway and config.
type Runner struct {
	Pipeline epsilon.PipelineConfig
	Gateway  solve.Solver
	Log      *zap.Logger
}

func (r Runner) RunCase(ctx context.Context, c Case) (Record, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	inst, err := gen.Generate(c.Size, c.Knobs, c.Seed)
	if err != nil {
		return Record{}, fmt.Errorf("case %s seed %d: generate: %w", c.Preset, c.Seed, err)
	}

	res, err := epsilon.Run(ctx, r.Gateway, inst, r.Pipeline, log)
	if err != nil {
		return Record{}, fmt.Errorf("case %s seed %d: %w", c.Preset, c.Seed, err)
	}

	snap := res.Snapshot
	return Record{
		RunID:  uuid.NewString(),
		Preset: c.Preset,
		Seed:   c.Seed,

		Members:  c.Size.Members,
		Defences: c.Size.Defences,

		EligibilityMode: c.Knobs.EligibilityMode,
		PMemberZero:     c.Knobs.PMemberZero,
		PRoomZero:       c.Knobs.PRoomZero,

		GStar:     res.GStar,
		FrontSize: len(res.Entries),

		SkipDominance:  snap.SkipDominance,
		SkipInfeasible: snap.SkipInfeasible,

		CountFeasible:   snap.CountFeasible,
		CountInfeasible: snap.CountInfeasible,

		TimeFeasibleMs:   float64(snap.TimeFeasible.Microseconds()) / 1000.0,
		TimeInfeasibleMs: float64(snap.TimeInfeasible.Microseconds()) / 1000.0,

		Unexplored: res.Unexplored,
		ElapsedMs:  float64(res.Elapsed.Microseconds()) / 1000.0,
	}, nil
}
