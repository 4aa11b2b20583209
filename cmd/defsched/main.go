// defsched generates (or loads) a thesis-defence instance and runs the full
// enumeration pipeline on it: maximize the number of scheduled defences,
// estimate ideal and nadir points for the secondary objectives, then walk the
// epsilon grid and print the non-dominated front.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/bench"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/engine"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/epsilon"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/gen"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/model"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/solve"
)

func main() {
	pflag.String("config", "", "optional YAML config file; flags override it")

	pflag.String("preset", "small", "instance size preset: small | med | large")
	pflag.Int("mode", 1, "eligibility mode: 1 global pool, 2 restricted per defence")
	pflag.Float64("p-member-zero", 0.82, "member unavailability level")
	pflag.Float64("p-room-zero", 0.86, "room unavailability level")
	pflag.Int64("seed", 42, "instance generation seed")
	pflag.String("load", "", "load an instance from JSON instead of generating")
	pflag.String("save-instance", "", "save the generated instance to this JSON path")

	pflag.Int("steps", 4, "epsilon grid steps per secondary objective")
	pflag.String("budget-mode", "dynamic", "time budgeting: dynamic | fixed")
	pflag.Duration("budget", 5*time.Minute, "total grid budget (dynamic mode)")
	pflag.Duration("per-iter-limit", 30*time.Second, "per-solve limit (fixed mode)")
	pflag.Duration("stage1-limit", time.Minute, "stage 1 solve limit")
	pflag.Duration("payoff-limit", time.Minute, "per payoff-row solve limit")

	pflag.String("out", "", "append one result row to this CSV file")
	pflag.Bool("verbose", false, "debug logging")
	pflag.Parse()

	v := viper.New()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		fatal(err)
	}
	v.SetEnvPrefix("DEFSCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			fatal(err)
		}
	}

	log, err := buildLogger(v.GetBool("verbose"))
	if err != nil {
		fatal(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inst, err := obtainInstance(v, log)
	if err != nil {
		log.Fatal("instance", zap.Error(err))
	}

	cfg := epsilon.PipelineConfig{
		Stage1Limit:    v.GetDuration("stage1-limit"),
		PayoffRowLimit: v.GetDuration("payoff-limit"),
		Enumeration: epsilon.Config{
			StepsPerObjective:     v.GetInt("steps"),
			TotalBudget:           v.GetDuration("budget"),
			PerIterLimit:          v.GetDuration("per-iter-limit"),
			CountSkippedInDivisor: true,
		},
	}
	switch strings.ToLower(v.GetString("budget-mode")) {
	case "dynamic":
		cfg.Enumeration.Mode = epsilon.BudgetDynamic
	case "fixed":
		cfg.Enumeration.Mode = epsilon.BudgetFixed
	default:
		log.Fatal("unknown budget mode", zap.String("budget_mode", v.GetString("budget-mode")))
	}

	gw := solve.Watchdog{Inner: engine.New()}

	start := time.Now()
	res, err := epsilon.Run(ctx, gw, inst, cfg, log)
	if err != nil {
		log.Fatal("pipeline", zap.Error(err))
	}

	printFront(res)

	if out := v.GetString("out"); out != "" {
		rec := recordOf(v, inst, res)
		if err := bench.AppendCSV(out, rec); err != nil {
			log.Fatal("write csv", zap.Error(err))
		}
		log.Info("result appended", zap.String("path", out))
	}

	log.Info("done",
		zap.Int("g_star", res.GStar),
		zap.Int("front_size", len(res.Entries)),
		zap.Duration("elapsed", time.Since(start)))
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func presetSize(name string) (gen.Size, error) {
	switch strings.ToLower(name) {
	case "small":
		return gen.Small, nil
	case "med", "medium":
		return gen.Med, nil
	case "large":
		return gen.Large, nil
	default:
		return gen.Size{}, fmt.Errorf("unknown preset %q (want small, med or large)", name)
	}
}

func obtainInstance(v *viper.Viper, log *zap.Logger) (*defence.Instance, error) {
	if path := v.GetString("load"); path != "" {
		log.Info("loading instance", zap.String("path", path))
		return defence.LoadInstance(path)
	}

	size, err := presetSize(v.GetString("preset"))
	if err != nil {
		return nil, err
	}
	knobs := gen.Knobs{
		EligibilityMode:    v.GetInt("mode"),
		PMemberZero:        v.GetFloat64("p-member-zero"),
		PRoomZero:          v.GetFloat64("p-room-zero"),
		SubjectsPerMember:  3,
		SubjectsPerDefence: 3,
	}
	seed := v.GetInt64("seed")

	log.Info("generating instance",
		zap.String("preset", v.GetString("preset")),
		zap.Int("mode", knobs.EligibilityMode),
		zap.Int64("seed", seed))

	inst, err := gen.Generate(size, knobs, seed)
	if err != nil {
		return nil, err
	}

	if path := v.GetString("save-instance"); path != "" {
		if err := defence.SaveInstance(path, inst); err != nil {
			return nil, err
		}
		log.Info("instance saved", zap.String("path", path))
	}
	return inst, nil
}

func printFront(res *epsilon.Result) {
	fmt.Printf("g* = %d   ideal = %v   nadir = %v\n", res.GStar, res.Ideal, res.Nadir)
	fmt.Printf("front (%d points):\n", len(res.Entries))
	for i, e := range res.Entries {
		mark := ""
		if !e.Proven {
			mark = "  (uncertified)"
		}
		fmt.Printf("  %2d: g=%d", i+1, e.Z.Primary())
		sec := e.Z.Secondary()
		for k, name := range model.SecondaryNames {
			fmt.Printf("  %s=%g", name, sec[k])
		}
		fmt.Println(mark)
	}

	s := res.Snapshot
	fmt.Printf("grid: %d cells, %d solved, %d dominance skips, %d infeasibility skips, %d unexplored\n",
		s.IterationsTotal, s.IterationsCompleted, s.SkipDominance, s.SkipInfeasible, res.Unexplored)
}

func recordOf(v *viper.Viper, inst *defence.Instance, res *epsilon.Result) bench.Record {
	snap := res.Snapshot
	return bench.Record{
		RunID:  uuid.NewString(),
		Preset: v.GetString("preset"),
		Seed:   v.GetInt64("seed"),

		Members:  inst.Members,
		Defences: inst.Defences,

		EligibilityMode: v.GetInt("mode"),
		PMemberZero:     v.GetFloat64("p-member-zero"),
		PRoomZero:       v.GetFloat64("p-room-zero"),

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
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "defsched:", err)
	os.Exit(2)
}
