// Package defence holds the thesis-defence scheduling instance data: problem
// sizes, eligibility, subject coverage and the availability tensors sampled by
// the generator. The model and engine consume it read-only.
package defence

import (
	"errors"
	"fmt"
)

type Instance struct {
	Members  int
	Defences int
	Days     int
	Slots    int
	Rooms    int
	Subjects int

	// CommitteeSize is the number of members a scheduled defence requires.
	CommitteeSize int

	// D is the availability zero-run length used when the instance was
	// generated. Carried for provenance and instance files only.
	D int

	// Eligible[i][j] — member i may serve on the committee of defence j.
	Eligible [][]bool

	// MemberAvail[i][k][l] in {0,1,2}: 0 unavailable, 1 and 2 available levels.
	MemberAvail [][][]int

	// RoomAvail[k][l][p] — room p is free at (day k, slot l).
	RoomAvail [][][]bool

	// MemberSubject[i][q] and DefenceSubject[j][q] drive the suitability
	// objective.
	MemberSubject  [][]bool
	DefenceSubject [][]bool
}

func NewInstance(inst Instance) (*Instance, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Members <= 0 {
		return fmt.Errorf("members must be > 0 (got %d)", inst.Members)
	}
	if inst.Defences <= 0 {
		return fmt.Errorf("defences must be > 0 (got %d)", inst.Defences)
	}
	if inst.Days <= 0 || inst.Slots <= 0 || inst.Rooms <= 0 {
		return fmt.Errorf("days, slots and rooms must be > 0 (got %d, %d, %d)",
			inst.Days, inst.Slots, inst.Rooms)
	}
	if inst.Subjects <= 0 {
		return fmt.Errorf("subjects must be > 0 (got %d)", inst.Subjects)
	}
	if inst.CommitteeSize <= 0 || inst.CommitteeSize > inst.Members {
		return fmt.Errorf("committee size must be in [1, members] (got %d)", inst.CommitteeSize)
	}

	if len(inst.Eligible) != inst.Members {
		return fmt.Errorf("eligible must have %d member rows (got %d)", inst.Members, len(inst.Eligible))
	}
	for i, row := range inst.Eligible {
		if len(row) != inst.Defences {
			return fmt.Errorf("eligible[%d] must have %d entries (got %d)", i, inst.Defences, len(row))
		}
	}

	if len(inst.MemberAvail) != inst.Members {
		return fmt.Errorf("memberAvail must have %d member rows (got %d)", inst.Members, len(inst.MemberAvail))
	}
	for i, days := range inst.MemberAvail {
		if len(days) != inst.Days {
			return fmt.Errorf("memberAvail[%d] must have %d days (got %d)", i, inst.Days, len(days))
		}
		for k, slots := range days {
			if len(slots) != inst.Slots {
				return fmt.Errorf("memberAvail[%d][%d] must have %d slots (got %d)", i, k, inst.Slots, len(slots))
			}
			for l, v := range slots {
				if v < 0 || v > 2 {
					return fmt.Errorf("memberAvail[%d][%d][%d] must be in {0,1,2} (got %d)", i, k, l, v)
				}
			}
		}
	}

	if len(inst.RoomAvail) != inst.Days {
		return fmt.Errorf("roomAvail must have %d days (got %d)", inst.Days, len(inst.RoomAvail))
	}
	for k, slots := range inst.RoomAvail {
		if len(slots) != inst.Slots {
			return fmt.Errorf("roomAvail[%d] must have %d slots (got %d)", k, inst.Slots, len(slots))
		}
		for l, rooms := range slots {
			if len(rooms) != inst.Rooms {
				return fmt.Errorf("roomAvail[%d][%d] must have %d rooms (got %d)", k, l, inst.Rooms, len(rooms))
			}
		}
	}

	if len(inst.MemberSubject) != inst.Members {
		return fmt.Errorf("memberSubject must have %d rows (got %d)", inst.Members, len(inst.MemberSubject))
	}
	for i, row := range inst.MemberSubject {
		if len(row) != inst.Subjects {
			return fmt.Errorf("memberSubject[%d] must have %d entries (got %d)", i, inst.Subjects, len(row))
		}
	}
	if len(inst.DefenceSubject) != inst.Defences {
		return fmt.Errorf("defenceSubject must have %d rows (got %d)", inst.Defences, len(inst.DefenceSubject))
	}
	for j, row := range inst.DefenceSubject {
		if len(row) != inst.Subjects {
			return fmt.Errorf("defenceSubject[%d] must have %d entries (got %d)", j, inst.Subjects, len(row))
		}
	}

	return nil
}

// Available reports whether member i can serve at (day k, slot l).
func (inst *Instance) Available(i, k, l int) bool {
	return inst.MemberAvail[i][k][l] > 0
}

// Suitability is the subject overlap between member i and defence j.
func (inst *Instance) Suitability(i, j int) int {
	n := 0
	for q := 0; q < inst.Subjects; q++ {
		if inst.MemberSubject[i][q] && inst.DefenceSubject[j][q] {
			n++
		}
	}
	return n
}
