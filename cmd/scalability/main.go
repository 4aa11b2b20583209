// scalability produces the enumeration scalability tables: every preset size
// crossed with a knob grid, several seeds per cell, one CSV row per run plus
// a per-cell summary in the log.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/bench"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/engine"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/epsilon"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/gen"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/solve"
)

type preset struct {
	name string
	size gen.Size
}

func main() {
	pflag.String("out", "artifacts/scalability.csv", "output CSV path")
	pflag.String("presets", "small,med,large", "comma-separated size presets")
	pflag.String("grid", "restricted", "knob grid: restricted | global | path to a YAML grid")
	pflag.Int("seeds", 3, "seeds per (preset, knobs) cell")
	pflag.Int64("base-seed", 1000, "first instance seed; consecutive seeds follow")
	pflag.String("save-instances", "", "when set, save every generated instance under this directory")

	pflag.Int("steps", 4, "epsilon grid steps per secondary objective")
	pflag.Duration("budget", 5*time.Minute, "total grid budget per run")
	pflag.Duration("stage1-limit", time.Minute, "stage 1 solve limit")
	pflag.Duration("payoff-limit", time.Minute, "per payoff-row solve limit")

	pflag.Bool("verbose", false, "debug logging")
	pflag.Parse()

	v := viper.New()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		fatal(err)
	}

	log, err := buildLogger(v.GetBool("verbose"))
	if err != nil {
		fatal(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	presets, err := parsePresets(v.GetString("presets"))
	if err != nil {
		log.Fatal("presets", zap.Error(err))
	}
	grid, err := resolveGrid(v.GetString("grid"))
	if err != nil {
		log.Fatal("knob grid", zap.Error(err))
	}

	runner := bench.Runner{
		Pipeline: epsilon.PipelineConfig{
			Stage1Limit:    v.GetDuration("stage1-limit"),
			PayoffRowLimit: v.GetDuration("payoff-limit"),
			Enumeration: epsilon.Config{
				StepsPerObjective:     v.GetInt("steps"),
				Mode:                  epsilon.BudgetDynamic,
				TotalBudget:           v.GetDuration("budget"),
				CountSkippedInDivisor: true,
			},
		},
		Gateway: solve.Watchdog{Inner: engine.New()},
		Log:     log,
	}

	seeds := v.GetInt("seeds")
	baseSeed := v.GetInt64("base-seed")
	saveDir := v.GetString("save-instances")

	var records []bench.Record
	for _, p := range presets {
		for gi, knobs := range grid {
			var cell []bench.Record
			for s := 0; s < seeds; s++ {
				c := bench.Case{
					Preset: p.name,
					Size:   p.size,
					Knobs:  knobs,
					Seed:   baseSeed + int64(s),
				}

				log.Info("running cell",
					zap.String("preset", c.Preset),
					zap.Int("grid_row", gi),
					zap.Int64("seed", c.Seed))

				if saveDir != "" {
					if err := saveInstance(saveDir, c); err != nil {
						log.Fatal("save instance", zap.Error(err))
					}
				}

				rec, err := runner.RunCase(ctx, c)
				if err != nil {
					log.Fatal("run case", zap.Error(err))
				}
				records = append(records, rec)
				cell = append(cell, rec)
			}

			sum := bench.Summarize(cell)
			log.Info("cell summary",
				zap.String("preset", p.name),
				zap.Int("grid_row", gi),
				zap.Float64("front_mean", sum.FrontMean),
				zap.Float64("front_std", sum.FrontStd),
				zap.Float64("skip_dominance_mean", sum.SkipDominanceMean),
				zap.Float64("skip_infeasible_mean", sum.SkipInfeasibleMean),
				zap.Float64("elapsed_mean_ms", sum.ElapsedMeanMs))
		}
	}

	out := v.GetString("out")
	if err := bench.WriteCSV(out, records); err != nil {
		log.Fatal("write csv", zap.Error(err))
	}
	log.Info("table written", zap.String("path", out), zap.Int("rows", len(records)))
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func parsePresets(s string) ([]preset, error) {
	var out []preset
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		switch name {
		case "small":
			out = append(out, preset{"small", gen.Small})
		case "med", "medium":
			out = append(out, preset{"med", gen.Med})
		case "large":
			out = append(out, preset{"large", gen.Large})
		default:
			return nil, fmt.Errorf("unknown preset %q", name)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no presets selected")
	}
	return out, nil
}

func resolveGrid(s string) ([]gen.Knobs, error) {
	switch strings.ToLower(s) {
	case "restricted":
		return gen.GridRestricted, nil
	case "global":
		return gen.GridGlobal, nil
	default:
		return gen.LoadKnobGrid(s)
	}
}

func saveInstance(dir string, c bench.Case) error {
	inst, err := gen.Generate(c.Size, c.Knobs, c.Seed)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s_m%d_s%d.json", c.Preset, c.Knobs.EligibilityMode, c.Seed)
	return defence.SaveInstance(filepath.Join(dir, name), inst)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "scalability:", err)
	os.Exit(2)
}
