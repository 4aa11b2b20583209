package defence

// Placement is where a scheduled defence sits and who serves on it.
type Placement struct {
	Day       int
	Slot      int
	Room      int
	Committee []int
}

// Assignment is the decision output of a solve: Placed[j] is nil when defence
// j stays unscheduled.
type Assignment struct {
	Placed []*Placement
}

func NewAssignment(defences int) *Assignment {
	return &Assignment{Placed: make([]*Placement, defences)}
}

// Scheduled counts the placed defences.
func (a *Assignment) Scheduled() int {
	n := 0
	for _, p := range a.Placed {
		if p != nil {
			n++
		}
	}
	return n
}

// Clone deep-copies the assignment so solver incumbents stay immutable.
func (a *Assignment) Clone() *Assignment {
	out := NewAssignment(len(a.Placed))
	for j, p := range a.Placed {
		if p == nil {
			continue
		}
		committee := make([]int, len(p.Committee))
		copy(committee, p.Committee)
		out.Placed[j] = &Placement{Day: p.Day, Slot: p.Slot, Room: p.Room, Committee: committee}
	}
	return out
}
