// Package gen produces synthetic defence-scheduling instances: availability
// tensors sampled from per-entity Markov chains, eligibility and subject
// coverage sampled uniformly, all reproducible from a seed.
package gen

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ChainConfig drives one availability Markov chain over a (days x slots)
// grid. Diag holds the stay probabilities p(s|s) per base state; off-diagonal
// transition mass is distributed proportionally to the other states' stay
// probabilities. Every entry into state 0 forces D-1 additional zero slots,
// modelling that an unavailability block spans at least D slots.
type ChainConfig struct {
	Days   int
	Slots  int
	D      int
	Warmup int
	Diag   map[int]float64
}

func (c ChainConfig) Validate() error {
	if c.Days <= 0 || c.Slots <= 0 {
		return fmt.Errorf("days and slots must be > 0 (got %d, %d)", c.Days, c.Slots)
	}
	if c.D < 1 {
		return fmt.Errorf("d must be >= 1 (got %d)", c.D)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("warmup must be >= 0 (got %d)", c.Warmup)
	}
	if len(c.Diag) < 2 {
		return fmt.Errorf("diag needs at least two states (got %d)", len(c.Diag))
	}
	if _, ok := c.Diag[0]; !ok {
		return fmt.Errorf("diag must include the unavailable state 0")
	}
	sum := 0.0
	for s, p := range c.Diag {
		if p <= 0 || p >= 1 {
			return fmt.Errorf("diag[%d] must be in (0,1) (got %g)", s, p)
		}
		sum += p
	}
	if sum <= 0 {
		return fmt.Errorf("diag probabilities sum to %g", sum)
	}
	return nil
}

// GenerateChain samples the availability matrix [day][slot]. Each day starts
// from state 0, runs Warmup hidden transitions, then emits Slots states.
func GenerateChain(cfg ChainConfig, rng *rand.Rand) ([][]int, error) {
	if rng == nil {
		return nil, fmt.Errorf("rng is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	states := make([]int, 0, len(cfg.Diag))
	for s := range cfg.Diag {
		states = append(states, s)
	}
	sort.Ints(states)

	diagSum := 0.0
	for _, s := range states {
		diagSum += cfg.Diag[s]
	}

	// off[a][b]: leave probability from a to b, proportional to diag[b].
	off := make(map[int]map[int]float64, len(states))
	for _, a := range states {
		off[a] = make(map[int]float64, len(states)-1)
		mass := 1.0 - cfg.Diag[a]
		for _, b := range states {
			if b == a {
				continue
			}
			off[a][b] = cfg.Diag[b] / diagSum * mass
		}
	}

	forced := cfg.D - 1

	// Negative states encode the forced-zero block after entering 0.
	step := func(curr int) int {
		if curr < 0 {
			next := curr - 1
			if -next > forced {
				return 0
			}
			return next
		}

		type branch struct {
			state int
			p     float64
		}
		branches := make([]branch, 0, len(states))
		branches = append(branches, branch{curr, cfg.Diag[curr]})
		for _, b := range states {
			if b == curr {
				continue
			}
			p := off[curr][b]
			if b == 0 && forced > 0 {
				branches = append(branches, branch{-1, p})
			} else {
				branches = append(branches, branch{b, p})
			}
		}

		total := 0.0
		for _, br := range branches {
			total += br.p
		}
		if math.Abs(total-1.0) > 1e-6 {
			for i := range branches {
				branches[i].p /= total
			}
		}

		u := rng.Float64()
		acc := 0.0
		for _, br := range branches {
			acc += br.p
			if u <= acc {
				return br.state
			}
		}
		return branches[len(branches)-1].state
	}

	out := make([][]int, cfg.Days)
	for k := range out {
		state := 0
		for w := 0; w < cfg.Warmup; w++ {
			state = step(state)
		}
		row := make([]int, cfg.Slots)
		for l := range row {
			state = step(state)
			if state < 0 {
				row[l] = 0
			} else {
				row[l] = state
			}
		}
		out[k] = row
	}
	return out, nil
}

// DiagMember maps p(avail=0) onto the member-chain stay probabilities with
// availability levels {0,1,2}.
func DiagMember(pZero float64) (map[int]float64, error) {
	switch {
	case math.Abs(pZero-0.78) < 1e-9:
		return map[int]float64{0: 0.95, 1: 0.70, 2: 0.70}, nil
	case math.Abs(pZero-0.82) < 1e-9:
		return map[int]float64{0: 0.95, 1: 0.63, 2: 0.63}, nil
	case math.Abs(pZero-0.86) < 1e-9:
		return map[int]float64{0: 0.95, 1: 0.55, 2: 0.55}, nil
	default:
		return nil, fmt.Errorf("p(avail=0) must be one of 0.78, 0.82, 0.86 (got %g)", pZero)
	}
}

// DiagRoom maps p(free=0) onto the room-chain stay probabilities with states
// {0,1}.
func DiagRoom(pZero float64) (map[int]float64, error) {
	switch {
	case math.Abs(pZero-0.8) < 1e-9:
		return map[int]float64{0: 0.95, 1: 0.70}, nil
	case math.Abs(pZero-0.86) < 1e-9:
		return map[int]float64{0: 0.95, 1: 0.80}, nil
	default:
		return nil, fmt.Errorf("p(free=0) must be one of 0.8, 0.86 (got %g)", pZero)
	}
}
