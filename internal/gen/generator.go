package gen

import (
	"fmt"
	"math/rand"

	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/defence"
)

const chainWarmup = 40

// Size fixes the dimensions of a generated instance.
type Size struct {
	Members       int
	Defences      int
	Days          int
	Slots         int
	Rooms         int
	Subjects      int
	D             int
	CommitteeSize int
}

func (s Size) Validate() error {
	if s.Members <= 0 || s.Defences <= 0 {
		return fmt.Errorf("members and defences must be > 0 (got %d, %d)", s.Members, s.Defences)
	}
	if s.Days <= 0 || s.Slots <= 0 || s.Rooms <= 0 || s.Subjects <= 0 {
		return fmt.Errorf("days, slots, rooms and subjects must be > 0 (got %d, %d, %d, %d)",
			s.Days, s.Slots, s.Rooms, s.Subjects)
	}
	if s.D < 1 {
		return fmt.Errorf("d must be >= 1 (got %d)", s.D)
	}
	if s.CommitteeSize <= 0 || s.CommitteeSize > s.Members {
		return fmt.Errorf("committee size must be in [1, members] (got %d)", s.CommitteeSize)
	}
	return nil
}

// Knobs are the instance-hardness controls mirrored from the experiment
// tables: eligibility tightness, the unavailability levels of members and
// rooms, and subject coverage counts.
type Knobs struct {
	// EligibilityMode 1 keeps the global eligible pool per defence;
	// mode 2 restricts each defence to a random sub-pool.
	EligibilityMode int `yaml:"eligibility_mode"`

	PMemberZero float64 `yaml:"p_member_zero"`
	PRoomZero   float64 `yaml:"p_room_zero"`

	SubjectsPerMember  int `yaml:"subjects_per_member"`
	SubjectsPerDefence int `yaml:"subjects_per_defence"`
}

func (k Knobs) Validate() error {
	if k.EligibilityMode != 1 && k.EligibilityMode != 2 {
		return fmt.Errorf("eligibility mode must be 1 or 2 (got %d)", k.EligibilityMode)
	}
	if _, err := DiagMember(k.PMemberZero); err != nil {
		return err
	}
	if _, err := DiagRoom(k.PRoomZero); err != nil {
		return err
	}
	if k.SubjectsPerMember <= 0 || k.SubjectsPerDefence <= 0 {
		return fmt.Errorf("subject counts must be > 0 (got %d, %d)",
			k.SubjectsPerMember, k.SubjectsPerDefence)
	}
	return nil
}

// Generate samples a full instance from size and knobs, reproducibly from the
// seed.
func Generate(size Size, knobs Knobs, seed int64) (*defence.Instance, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	if err := knobs.Validate(); err != nil {
		return nil, err
	}
	if knobs.SubjectsPerMember > size.Subjects || knobs.SubjectsPerDefence > size.Subjects {
		return nil, fmt.Errorf("subject counts exceed the subject universe %d", size.Subjects)
	}

	rng := rand.New(rand.NewSource(seed))

	// Global eligible pool: ~70% of the members.
	poolSize := max(size.CommitteeSize, size.Members*7/10)
	pool := chooseSubset(rng, size.Members, poolSize)

	eligible := make([][]bool, size.Members)
	for i := range eligible {
		eligible[i] = make([]bool, size.Defences)
	}
	for j := 0; j < size.Defences; j++ {
		members := pool
		if knobs.EligibilityMode == 2 {
			perDefence := max(size.CommitteeSize, size.Members*4/10)
			if perDefence > len(pool) {
				perDefence = len(pool)
			}
			members = chooseFrom(rng, pool, perDefence)
		}
		for _, i := range members {
			eligible[i][j] = true
		}
	}

	memberSubject := make([][]bool, size.Members)
	for i := range memberSubject {
		memberSubject[i] = make([]bool, size.Subjects)
		for _, q := range chooseSubset(rng, size.Subjects, knobs.SubjectsPerMember) {
			memberSubject[i][q] = true
		}
	}
	defenceSubject := make([][]bool, size.Defences)
	for j := range defenceSubject {
		defenceSubject[j] = make([]bool, size.Subjects)
		for _, q := range chooseSubset(rng, size.Subjects, knobs.SubjectsPerDefence) {
			defenceSubject[j][q] = true
		}
	}

	memberDiag, err := DiagMember(knobs.PMemberZero)
	if err != nil {
		return nil, err
	}
	memberAvail := make([][][]int, size.Members)
	for i := range memberAvail {
		chain, err := GenerateChain(ChainConfig{
			Days: size.Days, Slots: size.Slots, D: size.D,
			Warmup: chainWarmup, Diag: memberDiag,
		}, rng)
		if err != nil {
			return nil, err
		}
		memberAvail[i] = chain
	}

	roomDiag, err := DiagRoom(knobs.PRoomZero)
	if err != nil {
		return nil, err
	}
	roomAvail := make([][][]bool, size.Days)
	for k := range roomAvail {
		roomAvail[k] = make([][]bool, size.Slots)
		for l := range roomAvail[k] {
			roomAvail[k][l] = make([]bool, size.Rooms)
		}
	}
	for p := 0; p < size.Rooms; p++ {
		chain, err := GenerateChain(ChainConfig{
			Days: size.Days, Slots: size.Slots, D: size.D,
			Warmup: chainWarmup, Diag: roomDiag,
		}, rng)
		if err != nil {
			return nil, err
		}
		for k := 0; k < size.Days; k++ {
			for l := 0; l < size.Slots; l++ {
				roomAvail[k][l][p] = chain[k][l] == 1
			}
		}
	}

	return defence.NewInstance(defence.Instance{
		Members:  size.Members,
		Defences: size.Defences,
		Days:     size.Days,
		Slots:    size.Slots,
		Rooms:    size.Rooms,
		Subjects: size.Subjects,

		CommitteeSize: size.CommitteeSize,
		D:             size.D,

		Eligible:       eligible,
		MemberAvail:    memberAvail,
		RoomAvail:      roomAvail,
		MemberSubject:  memberSubject,
		DefenceSubject: defenceSubject,
	})
}

// chooseSubset picks k distinct values from [0, n).
func chooseSubset(rng *rand.Rand, n, k int) []int {
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	rng.Shuffle(n, func(a, b int) { all[a], all[b] = all[b], all[a] })
	return all[:k]
}

// chooseFrom picks k distinct values from the given universe.
func chooseFrom(rng *rand.Rand, universe []int, k int) []int {
	arr := make([]int, len(universe))
	copy(arr, universe)
	rng.Shuffle(len(arr), func(a, b int) { arr[a], arr[b] = arr[b], arr[a] })
	return arr[:k]
}
