package model

import (
	"math"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/objective"
)

// The secondary objectives, in vector order after the primary g.
const (
	Suitability = iota // subject overlap of committees with their defences
	Balance            // negated sum of squared member loads
	Compactness        // negated count of distinct days used
	NumSecondary
)

// SecondaryNames in vector order, for reports and CSV headers.
var SecondaryNames = [NumSecondary]string{"suitability", "balance", "compactness"}

// DeclaredSenses gives the objectives in their natural statement: g and
// suitability maximized, load imbalance and days-used minimized. Evaluate
// already returns maximize-form, so these are for reporting only.
func DeclaredSenses() []objective.Sense {
	return []objective.Sense{objective.Maximize, objective.Maximize, objective.Minimize, objective.Minimize}
}

// Evaluate computes the full objective vector (primary + secondaries) of an
// assignment, in maximize-form. All components are integral.
func Evaluate(inst *defence.Instance, asg *defence.Assignment) objective.Vector {
	v := make(objective.Vector, 1+NumSecondary)
	v[0] = float64(asg.Scheduled())

	suit := 0
	loads := make([]int, inst.Members)
	daysUsed := make([]bool, inst.Days)
	for j, p := range asg.Placed {
		if p == nil {
			continue
		}
		daysUsed[p.Day] = true
		for _, i := range p.Committee {
			suit += inst.Suitability(i, j)
			loads[i]++
		}
	}

	sq := 0
	for _, l := range loads {
		sq += l * l
	}
	days := 0
	for _, u := range daysUsed {
		if u {
			days++
		}
	}

	v[1+Suitability] = float64(suit)
	v[1+Balance] = -float64(sq)
	v[1+Compactness] = -float64(days)
	return v
}

// SecondaryUpperBounds gives safe per-objective bounds on |z_k| in
// maximize-form, used to pick the augmentation exponent.
func SecondaryUpperBounds(inst *defence.Instance) [NumSecondary]float64 {
	var out [NumSecondary]float64

	suit := 0
	for j := 0; j < inst.Defences; j++ {
		per := 0
		for q := 0; q < inst.Subjects; q++ {
			if inst.DefenceSubject[j][q] {
				per++
			}
		}
		suit += inst.CommitteeSize * per
	}
	out[Suitability] = float64(suit)

	totalLoad := inst.Defences * inst.CommitteeSize
	out[Balance] = float64(totalLoad * totalLoad)

	out[Compactness] = float64(inst.Days)
	return out
}

// augWeight returns 10^-E with E = floor(log10 M) + 2 for M the safe bound on
// the summed absolute secondaries, so a perturbation term weighted by it
// stays strictly below 1 for every feasible solution.
func augWeight(inst *defence.Instance) float64 {
	m := 0.0
	for _, b := range SecondaryUpperBounds(inst) {
		m += b
	}
	if m <= 0 {
		return 0.1
	}
	e := int(math.Floor(math.Log10(m))) + 2
	return math.Pow(10, -float64(e))
}
