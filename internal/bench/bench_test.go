package bench

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/engine"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/epsilon"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/gen"
)

func tinyCase() Case {
	return Case{
		Preset: "tiny",
		Size: gen.Size{
			Members: 5, Defences: 2, Days: 1, Slots: 2, Rooms: 1,
			Subjects: 2, D: 1, CommitteeSize: 2,
		},
		Knobs: gen.Knobs{
			EligibilityMode:    1,
			PMemberZero:        0.86,
			PRoomZero:          0.86,
			SubjectsPerMember:  1,
			SubjectsPerDefence: 1,
		},
		Seed: 11,
	}
}

func tinyPipeline() epsilon.PipelineConfig {
	cfg := epsilon.DefaultPipelineConfig()
	cfg.Stage1Limit = 5 * time.Second
	cfg.PayoffRowLimit = 5 * time.Second
	cfg.Enumeration.StepsPerObjective = 1
	cfg.Enumeration.Mode = epsilon.BudgetFixed
	cfg.Enumeration.PerIterLimit = 5 * time.Second
	return cfg
}

func TestRunCase(t *testing.T) {
	r := Runner{Pipeline: tinyPipeline(), Gateway: engine.New()}

	rec, err := r.RunCase(context.Background(), tinyCase())
	require.NoError(t, err)

	assert.NotEmpty(t, rec.RunID)
	assert.Equal(t, "tiny", rec.Preset)
	assert.Equal(t, 5, rec.Members)
	assert.GreaterOrEqual(t, rec.GStar, 0)
	assert.LessOrEqual(t, rec.GStar, 2)
	if rec.GStar > 0 {
		assert.Greater(t, rec.FrontSize, 0)
	}
	snap := rec.SkipDominance + rec.SkipInfeasible
	assert.GreaterOrEqual(t, snap, 0)
}

func TestRunCaseDeterministicModuloID(t *testing.T) {
	r := Runner{Pipeline: tinyPipeline(), Gateway: engine.New()}

	a, err := r.RunCase(context.Background(), tinyCase())
	require.NoError(t, err)
	b, err := r.RunCase(context.Background(), tinyCase())
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	a.RunID, b.RunID = "", ""
	a.TimeFeasibleMs, b.TimeFeasibleMs = 0, 0
	a.TimeInfeasibleMs, b.TimeInfeasibleMs = 0, 0
	a.ElapsedMs, b.ElapsedMs = 0, 0
	assert.Equal(t, a, b)
}

func TestWriteAndAppendCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "table.csv")

	rec := Record{RunID: "r1", Preset: "small", Seed: 3, Members: 8, Defences: 6,
		EligibilityMode: 2, PMemberZero: 0.78, PRoomZero: 0.8,
		GStar: 5, FrontSize: 4, SkipDominance: 2, SkipInfeasible: 1,
		CountFeasible: 6, CountInfeasible: 1, ElapsedMs: 12.5}

	require.NoError(t, WriteCSV(path, []Record{rec}))
	require.NoError(t, AppendCSV(path, rec))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "r1", rows[1][0])
	assert.Equal(t, rows[1], rows[2])
}

func TestAppendCSVWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")

	require.NoError(t, AppendCSV(path, Record{RunID: "a"}))
	require.NoError(t, AppendCSV(path, Record{RunID: "b"}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "run_id", rows[0][0])
	assert.Equal(t, "a", rows[1][0])
	assert.Equal(t, "b", rows[2][0])
}

func TestSummarize(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.N)

	s = Summarize([]Record{
		{FrontSize: 2, SkipDominance: 1, SkipInfeasible: 3, ElapsedMs: 10},
		{FrontSize: 4, SkipDominance: 3, SkipInfeasible: 5, ElapsedMs: 30},
	})
	assert.Equal(t, 2, s.N)
	assert.InDelta(t, 3.0, s.FrontMean, 1e-9)
	assert.InDelta(t, 2.0, s.SkipDominanceMean, 1e-9)
	assert.InDelta(t, 4.0, s.SkipInfeasibleMean, 1e-9)
	assert.InDelta(t, 20.0, s.ElapsedMeanMs, 1e-9)
	assert.Greater(t, s.ElapsedStdMs, 0.0)
}
