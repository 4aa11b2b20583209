package gen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset sizes for the scalability tables. The exact-search engine is meant
// for instances of this order; larger runs just lean harder on the time
// budget.
var (
	Small = Size{Members: 8, Defences: 6, Days: 3, Slots: 4, Rooms: 2, Subjects: 8, D: 2, CommitteeSize: 3}
	Med   = Size{Members: 12, Defences: 9, Days: 4, Slots: 4, Rooms: 2, Subjects: 10, D: 2, CommitteeSize: 3}
	Large = Size{Members: 16, Defences: 12, Days: 4, Slots: 5, Rooms: 3, Subjects: 12, D: 2, CommitteeSize: 3}
)

func knobs(mode int, pMember, pRoom float64) Knobs {
	return Knobs{
		EligibilityMode:    mode,
		PMemberZero:        pMember,
		PRoomZero:          pRoom,
		SubjectsPerMember:  3,
		SubjectsPerDefence: 3,
	}
}

// The two knob grids of a table: one block with restricted per-defence
// eligibility, one with the global pool.
var (
	GridRestricted = []Knobs{
		knobs(2, 0.82, 0.86),
		knobs(2, 0.82, 0.8),
		knobs(2, 0.78, 0.86),
		knobs(2, 0.78, 0.8),
	}
	GridGlobal = []Knobs{
		knobs(1, 0.82, 0.86),
		knobs(1, 0.82, 0.8),
		knobs(1, 0.86, 0.86),
		knobs(1, 0.86, 0.8),
	}
)

// LoadKnobGrid reads a custom knob grid from a YAML file: a list of Knobs
// documents. Used by cmd/scalability to override the built-in grids.
func LoadKnobGrid(path string) ([]Knobs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var grid []Knobs
	if err := yaml.Unmarshal(data, &grid); err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("knob grid %s is empty", path)
	}
	for i, k := range grid {
		if err := k.Validate(); err != nil {
			return nil, fmt.Errorf("knob grid %s entry %d: %w", path, i, err)
		}
	}
	return grid, nil
}
