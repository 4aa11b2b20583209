// Package model assembles solvable models from an instance plus the bounds
// and objective weighting a pipeline stage layers on top. The engine consumes
// the result opaquely; the enumeration core only ever sees this package's
// constructors and the gateway interface.
package model

import (
	"fmt"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/objective"
)

// FreeG marks a model whose primary objective is unconstrained.
const FreeG = -1

// Model is one solver submission: the instance, an optional equality on the
// number of scheduled defences, optional epsilon lower bounds on the
// secondary objectives (maximize-form), and the linear search score
// PrimaryWeight*g + sum SecondaryWeights[k]*z_k the solver maximizes.
type Model struct {
	Inst *defence.Instance

	FixedG    int
	EpsBounds objective.Bounds

	PrimaryWeight    float64
	SecondaryWeights []float64

	// Name tags the model in logs, the way the original tagged P_z and P_eps.
	Name string
}

func (m *Model) Validate() error {
	if m == nil || m.Inst == nil {
		return fmt.Errorf("model has no instance")
	}
	if err := m.Inst.Validate(); err != nil {
		return err
	}
	if m.FixedG != FreeG && (m.FixedG < 0 || m.FixedG > m.Inst.Defences) {
		return fmt.Errorf("fixed g must be in [0, %d] (got %d)", m.Inst.Defences, m.FixedG)
	}
	if len(m.SecondaryWeights) != NumSecondary {
		return fmt.Errorf("secondary weights must have length %d (got %d)", NumSecondary, len(m.SecondaryWeights))
	}
	if m.EpsBounds != nil && len(m.EpsBounds) != NumSecondary {
		return fmt.Errorf("eps bounds must have length %d (got %d)", NumSecondary, len(m.EpsBounds))
	}
	return nil
}

// BuildStage1 builds the model maximizing g alone.
func BuildStage1(inst *defence.Instance) (*Model, error) {
	m := &Model{
		Inst:             inst,
		FixedG:           FreeG,
		PrimaryWeight:    1,
		SecondaryWeights: make([]float64, NumSecondary),
		Name:             "stage1_g",
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// BuildPayoffRow builds the payoff-table model for secondary objective k
// under g = gStar: maximize z_k + 10^-E * sum_{j != k} z_j, with E chosen so
// the perturbation can never disturb the leading term's integer part.
func BuildPayoffRow(inst *defence.Instance, gStar, k int) (*Model, error) {
	if k < 0 || k >= NumSecondary {
		return nil, fmt.Errorf("payoff row index must be in [0, %d) (got %d)", NumSecondary, k)
	}
	w := augWeight(inst)
	weights := make([]float64, NumSecondary)
	for j := range weights {
		weights[j] = w
	}
	weights[k] = 1

	m := &Model{
		Inst:             inst,
		FixedG:           gStar,
		SecondaryWeights: weights,
		Name:             fmt.Sprintf("payoff_z%d", k+1),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// BuildEpsilon builds one enumeration slice: g = gStar, epsilon lower bounds
// on every secondary objective, and the augmented objective weighting each
// surplus by 1/((range)*(n_z - 0.9)) so the whole augmentation stays strictly
// below the smallest primary improvement while still breaking ties towards
// efficient points.
func BuildEpsilon(inst *defence.Instance, gStar int, eps objective.Bounds, ideal, nadir []float64) (*Model, error) {
	if len(ideal) != NumSecondary || len(nadir) != NumSecondary {
		return nil, fmt.Errorf("ideal and nadir must have length %d (got %d, %d)",
			NumSecondary, len(ideal), len(nadir))
	}
	base := 1.0 / (float64(NumSecondary+1) - 0.9)

	weights := make([]float64, NumSecondary)
	for k := range weights {
		span := ideal[k] - nadir[k]
		if span > objective.DefaultTolerance {
			weights[k] = base / span
		}
	}

	m := &Model{
		Inst:             inst,
		FixedG:           gStar,
		EpsBounds:        eps.Clone(),
		SecondaryWeights: weights,
		Name:             "p_eps",
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Score is the linear search objective the solver maximizes for this model.
func (m *Model) Score(v objective.Vector) float64 {
	s := m.PrimaryWeight * float64(v.Primary())
	for k, w := range m.SecondaryWeights {
		s += w * v[k+1]
	}
	return s
}
