package gen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateChainStatesAndDeterminism(t *testing.T) {
	cfg := ChainConfig{
		Days: 5, Slots: 12, D: 2, Warmup: 40,
		Diag: map[int]float64{0: 0.95, 1: 0.63, 2: 0.63},
	}

	a, err := GenerateChain(cfg, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := GenerateChain(cfg, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	require.Len(t, a, cfg.Days)
	for _, row := range a {
		require.Len(t, row, cfg.Slots)
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 2)
		}
	}

	c, err := GenerateChain(cfg, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerateChainForcedZeroRuns(t *testing.T) {
	cfg := ChainConfig{
		Days: 10, Slots: 20, D: 3, Warmup: 40,
		Diag: map[int]float64{0: 0.95, 1: 0.70},
	}
	m, err := GenerateChain(cfg, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	// Interior zero runs must span at least D slots: entering state 0 forces
	// D-1 extra zeros. Runs touching a day boundary may be truncated.
	for _, row := range m {
		run := 0
		for l, v := range row {
			if v == 0 {
				run++
				continue
			}
			if run > 0 && run < cfg.D && l-run > 0 {
				t.Fatalf("interior zero run of length %d < d=%d in row %v", run, cfg.D, row)
			}
			run = 0
		}
	}
}

func TestGenerateChainValidation(t *testing.T) {
	_, err := GenerateChain(ChainConfig{Days: 1, Slots: 1, D: 2, Diag: map[int]float64{0: 0.9, 1: 0.7}}, nil)
	assert.Error(t, err)

	_, err = GenerateChain(ChainConfig{Days: 0, Slots: 1, D: 2, Diag: map[int]float64{0: 0.9, 1: 0.7}},
		rand.New(rand.NewSource(1)))
	assert.Error(t, err)

	// Missing unavailable state.
	_, err = GenerateChain(ChainConfig{Days: 1, Slots: 1, D: 2, Diag: map[int]float64{1: 0.9, 2: 0.7}},
		rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestDiagTables(t *testing.T) {
	for _, p := range []float64{0.78, 0.82, 0.86} {
		d, err := DiagMember(p)
		require.NoError(t, err)
		assert.Len(t, d, 3)
	}
	_, err := DiagMember(0.5)
	assert.Error(t, err)

	for _, p := range []float64{0.8, 0.86} {
		d, err := DiagRoom(p)
		require.NoError(t, err)
		assert.Len(t, d, 2)
	}
	_, err = DiagRoom(0.5)
	assert.Error(t, err)
}

func TestGenerateInstance(t *testing.T) {
	k := knobs(2, 0.82, 0.86)

	inst, err := Generate(Small, k, 1)
	require.NoError(t, err)
	require.NoError(t, inst.Validate())

	again, err := Generate(Small, k, 1)
	require.NoError(t, err)
	assert.Equal(t, inst, again)

	other, err := Generate(Small, k, 2)
	require.NoError(t, err)
	assert.NotEqual(t, inst, other)

	// Subject coverage counts are exact.
	for i := 0; i < inst.Members; i++ {
		n := 0
		for q := 0; q < inst.Subjects; q++ {
			if inst.MemberSubject[i][q] {
				n++
			}
		}
		assert.Equal(t, k.SubjectsPerMember, n)
	}
}

func TestPresetGridsValid(t *testing.T) {
	for _, g := range [][]Knobs{GridRestricted, GridGlobal} {
		for _, k := range g {
			assert.NoError(t, k.Validate())
		}
	}
	for _, s := range []Size{Small, Med, Large} {
		assert.NoError(t, s.Validate())
	}
}
