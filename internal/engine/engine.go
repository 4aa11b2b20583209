// Package engine is the exact solver behind the gateway: a deterministic,
// time-limited branch-and-bound over defence placements. The enumeration core
// never imports it directly; it sees only the solve.Solver contract, so a
// MILP binding could replace this package wholesale.
package engine

import (
	"context"
	"time"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/model"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/objective"
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/solve"
)

// deadline checks are amortized over this many nodes.
const checkEvery = 1024

// scoreSlack absorbs float noise in bound comparisons; it sits far below the
// smallest augmentation weight increment.
const scoreSlack = 1e-12

type Solver struct{}

func New() *Solver { return &Solver{} }

type search struct {
	m    *model.Model
	inst *defence.Instance

	deadline time.Time
	ctx      context.Context
	timedOut bool
	nodes    int64

	// per-(day,slot) busy masks; members and rooms both fit in uint64 at the
	// instance sizes this engine targets.
	memberBusy [][]uint64
	roomFree   [][]int // count of still-free available rooms per (day, slot)

	scheduled int
	suit      int
	sumSq     int
	loads     []int
	dayCount  []int
	daysUsed  int

	asg *defence.Assignment

	// maxSuit[j]: best possible committee suitability for defence j.
	maxSuit []int
	// suffixMaxSuit[j]: sum of maxSuit over defences >= j.
	suffixMaxSuit []int

	hasBest   bool
	bestScore float64
	bestZ     objective.Vector
	bestAsg   *defence.Assignment
}

func (s *Solver) Solve(ctx context.Context, m *model.Model, limit time.Duration) solve.Outcome {
	start := time.Now()
	if err := m.Validate(); err != nil {
		return solve.Outcome{Status: solve.StatusError, Message: err.Error(), Duration: time.Since(start)}
	}
	if m.Inst.Members > 64 {
		return solve.Outcome{Status: solve.StatusError,
			Message: "engine supports at most 64 members", Duration: time.Since(start)}
	}

	st := newSearch(ctx, m, start.Add(limit))
	st.dfs(0)

	out := solve.Outcome{Duration: time.Since(start), Nodes: st.nodes}
	switch {
	case st.hasBest && !st.timedOut:
		out.Status = solve.StatusOptimal
	case st.hasBest:
		out.Status = solve.StatusFeasible
	case st.timedOut:
		out.Status = solve.StatusNoIncumbent
	default:
		out.Status = solve.StatusInfeasible
	}
	if st.hasBest {
		out.Z = st.bestZ
		out.Assignment = st.bestAsg
	}
	return out
}

func newSearch(ctx context.Context, m *model.Model, deadline time.Time) *search {
	inst := m.Inst

	st := &search{
		m:        m,
		inst:     inst,
		ctx:      ctx,
		deadline: deadline,
		loads:    make([]int, inst.Members),
		dayCount: make([]int, inst.Days),
		asg:      defence.NewAssignment(inst.Defences),
	}

	st.memberBusy = make([][]uint64, inst.Days)
	st.roomFree = make([][]int, inst.Days)
	for k := 0; k < inst.Days; k++ {
		st.memberBusy[k] = make([]uint64, inst.Slots)
		st.roomFree[k] = make([]int, inst.Slots)
		for l := 0; l < inst.Slots; l++ {
			for p := 0; p < inst.Rooms; p++ {
				if inst.RoomAvail[k][l][p] {
					st.roomFree[k][l]++
				}
			}
		}
	}

	st.maxSuit = make([]int, inst.Defences)
	for j := range st.maxSuit {
		st.maxSuit[j] = bestCommitteeSuit(inst, j)
	}
	st.suffixMaxSuit = make([]int, inst.Defences+1)
	for j := inst.Defences - 1; j >= 0; j-- {
		st.suffixMaxSuit[j] = st.suffixMaxSuit[j+1] + st.maxSuit[j]
	}

	return st
}

// bestCommitteeSuit sums the CommitteeSize largest member suitabilities for
// defence j, an admissible bound on what any committee can contribute.
func bestCommitteeSuit(inst *defence.Instance, j int) int {
	top := make([]int, 0, inst.Members)
	for i := 0; i < inst.Members; i++ {
		if inst.Eligible[i][j] {
			top = append(top, inst.Suitability(i, j))
		}
	}
	// insertion sort, descending; candidate lists are small
	for a := 1; a < len(top); a++ {
		for b := a; b > 0 && top[b] > top[b-1]; b-- {
			top[b], top[b-1] = top[b-1], top[b]
		}
	}
	sum := 0
	for a := 0; a < len(top) && a < inst.CommitteeSize; a++ {
		sum += top[a]
	}
	return sum
}

func (st *search) expired() bool {
	st.nodes++
	if st.timedOut {
		return true
	}
	if st.nodes%checkEvery == 0 {
		if time.Now().After(st.deadline) || st.ctx.Err() != nil {
			st.timedOut = true
		}
	}
	return st.timedOut
}

// vector builds the true objective vector from the running totals.
func (st *search) vector() objective.Vector {
	return objective.Vector{
		float64(st.scheduled),
		float64(st.suit),
		-float64(st.sumSq),
		-float64(st.daysUsed),
	}
}

// upper returns admissible maximize-form bounds on the secondaries reachable
// from this node: suitability can still grow by the remaining defences' best
// committees; balance and compactness only degrade as placements are added.
func (st *search) upper(j int) [model.NumSecondary]float64 {
	return [model.NumSecondary]float64{
		model.Suitability: float64(st.suit + st.suffixMaxSuit[j]),
		model.Balance:     -float64(st.sumSq),
		model.Compactness: -float64(st.daysUsed),
	}
}

func (st *search) prune(j int) bool {
	remaining := st.inst.Defences - j

	gUpper := st.scheduled + remaining
	if st.m.FixedG != model.FreeG && gUpper < st.m.FixedG {
		return true
	}

	up := st.upper(j)

	if st.m.EpsBounds != nil {
		for k := range up {
			if !objective.GE(up[k], st.m.EpsBounds[k], objective.DefaultTolerance) {
				return true
			}
		}
	}

	if st.hasBest {
		ub := st.m.PrimaryWeight * float64(gUpper)
		for k, w := range st.m.SecondaryWeights {
			ub += w * up[k]
		}
		if ub <= st.bestScore+scoreSlack {
			return true
		}
	}
	return false
}

func (st *search) dfs(j int) {
	if st.expired() {
		return
	}
	if j == st.inst.Defences {
		st.leaf()
		return
	}
	if st.prune(j) {
		return
	}

	if st.m.FixedG == model.FreeG || st.scheduled < st.m.FixedG {
		st.branchSchedule(j)
	}

	// Leave defence j unscheduled.
	if !st.timedOut {
		st.dfs(j + 1)
	}
}

func (st *search) branchSchedule(j int) {
	inst := st.inst
	for k := 0; k < inst.Days && !st.timedOut; k++ {
		for l := 0; l < inst.Slots && !st.timedOut; l++ {
			if st.roomFree[k][l] == 0 {
				continue
			}
			// Rooms are interchangeable for the objectives and for every
			// future decision at this (day, slot): only the free count
			// matters, so committing the lowest free available room keeps
			// the search complete.
			room := st.pickRoom(k, l)
			if room < 0 {
				continue
			}

			var cands []int
			for i := 0; i < inst.Members; i++ {
				if inst.Eligible[i][j] && inst.Available(i, k, l) && st.memberBusy[k][l]&(1<<uint(i)) == 0 {
					cands = append(cands, i)
				}
			}
			if len(cands) < inst.CommitteeSize {
				continue
			}

			committee := make([]int, inst.CommitteeSize)
			st.committees(j, k, l, room, cands, committee, 0, 0)
		}
	}
}

func (st *search) pickRoom(k, l int) int {
	// lowest-index available room not yet taken at (k, l)
	taken := 0
	for p := 0; p < st.inst.Rooms; p++ {
		if !st.inst.RoomAvail[k][l][p] {
			continue
		}
		if taken == st.roomsInUse(k, l) {
			return p
		}
		taken++
	}
	return -1
}

func (st *search) roomsInUse(k, l int) int {
	used := 0
	for p := 0; p < st.inst.Rooms; p++ {
		if st.inst.RoomAvail[k][l][p] {
			used++
		}
	}
	return used - st.roomFree[k][l]
}

// committees enumerates CommitteeSize-subsets of cands in lexicographic
// order, recursing into the next defence for each complete committee.
func (st *search) committees(j, k, l, room int, cands, committee []int, from, depth int) {
	if st.timedOut {
		return
	}
	if depth == len(committee) {
		st.place(j, k, l, room, committee)
		return
	}
	// need enough candidates left to fill the committee
	for c := from; c <= len(cands)-(len(committee)-depth); c++ {
		committee[depth] = cands[c]
		st.committees(j, k, l, room, cands, committee, c+1, depth+1)
	}
}

func (st *search) place(j, k, l, room int, committee []int) {
	inst := st.inst

	suitDelta := 0
	for _, i := range committee {
		suitDelta += inst.Suitability(i, j)
	}

	st.scheduled++
	st.suit += suitDelta
	for _, i := range committee {
		st.sumSq += 2*st.loads[i] + 1
		st.loads[i]++
		st.memberBusy[k][l] |= 1 << uint(i)
	}
	st.roomFree[k][l]--
	if st.dayCount[k] == 0 {
		st.daysUsed++
	}
	st.dayCount[k]++

	saved := make([]int, len(committee))
	copy(saved, committee)
	st.asg.Placed[j] = &defence.Placement{Day: k, Slot: l, Room: room, Committee: saved}

	st.dfs(j + 1)

	st.asg.Placed[j] = nil
	st.dayCount[k]--
	if st.dayCount[k] == 0 {
		st.daysUsed--
	}
	st.roomFree[k][l]++
	for _, i := range committee {
		st.memberBusy[k][l] &^= 1 << uint(i)
		st.loads[i]--
		st.sumSq -= 2*st.loads[i] + 1
	}
	st.suit -= suitDelta
	st.scheduled--
}

func (st *search) leaf() {
	if st.m.FixedG != model.FreeG && st.scheduled != st.m.FixedG {
		return
	}
	z := st.vector()
	if st.m.EpsBounds != nil {
		for k := 0; k < model.NumSecondary; k++ {
			if !objective.GE(z[k+1], st.m.EpsBounds[k], objective.DefaultTolerance) {
				return
			}
		}
	}
	score := st.m.Score(z)
	if !st.hasBest || score > st.bestScore+scoreSlack {
		st.hasBest = true
		st.bestScore = score
		st.bestZ = z
		st.bestAsg = st.asg.Clone()
	}
}
