package objective

import "fmt"

// Bounds is the epsilon bound tuple for one enumeration iteration: one lower
// bound per secondary objective, in maximize-form. A tuple is owned by the
// iteration that built it and discarded afterwards.
type Bounds []float64

func (b Bounds) Clone() Bounds {
	out := make(Bounds, len(b))
	copy(out, b)
	return out
}

// TighterOrEqual reports whether b constrains at least as hard as other in
// every component. In maximize-form a larger lower bound is the tighter one.
func (b Bounds) TighterOrEqual(other Bounds, tol float64) bool {
	if len(b) != len(other) {
		panic(fmt.Sprintf("objective: bound tuples of lengths %d and %d", len(b), len(other)))
	}
	for i := range b {
		if !GE(b[i], other[i], tol) {
			return false
		}
	}
	return true
}
