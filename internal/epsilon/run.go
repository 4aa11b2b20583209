package epsilon

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/solve"
)

// PipelineConfig bundles the whole two-stage run: the Stage 1 and payoff-row
// limits plus the enumeration config.
type PipelineConfig struct {
	Stage1Limit    time.Duration
	PayoffRowLimit time.Duration
	Enumeration    Config
}

func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Stage1Limit:    time.Minute,
		PayoffRowLimit: time.Minute,
		Enumeration:    DefaultConfig(),
	}
}

func (c *PipelineConfig) Validate() error {
	if c.Stage1Limit <= 0 || c.PayoffRowLimit <= 0 {
		return errors.New("stage limits must be positive")
	}
	return c.Enumeration.Validate()
}

// Run executes the full pipeline on one instance: Stage 1, payoff table,
// grid enumeration. The returned result carries the front, the payoff table
// and the tracker snapshot of the entire run.
func Run(ctx context.Context, gw solve.Solver, inst *defence.Instance,
	cfg PipelineConfig, log *zap.Logger) (*Result, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	tr := solve.NewTracker()

	gStar, err := RunStage1(ctx, gw, inst, tr, cfg.Stage1Limit, log)
	if err != nil {
		return nil, err
	}

	pt, err := ComputeIdealNadir(ctx, gw, inst, gStar, tr, cfg.PayoffRowLimit, log)
	if err != nil {
		return nil, err
	}

	enum, err := NewEnumerator(cfg.Enumeration, gw, log)
	if err != nil {
		return nil, err
	}
	res, err := enum.Enumerate(ctx, inst, gStar, pt, tr)
	if err != nil {
		return res, err
	}

	log.Info("pipeline done",
		zap.Int("g_star", res.GStar),
		zap.Int("front_size", len(res.Entries)),
		zap.Int("skip_dominance", res.Snapshot.SkipDominance),
		zap.Int("skip_infeasible", res.Snapshot.SkipInfeasible),
		zap.Int("unexplored", res.Unexplored),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}
