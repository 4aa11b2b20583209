package objective

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultTolerance absorbs solver numerical noise in component comparisons.
// The primary objective is integral, so the tolerance is strict for it.
const DefaultTolerance = 1e-6

// Sense declares the direction of an objective as stated by the model.
// Internally every vector is carried in maximize-form; Normalize flips
// Minimize components once, at the boundary.
type Sense int

const (
	Maximize Sense = iota + 1
	Minimize
)

func (s Sense) String() string {
	switch s {
	case Maximize:
		return "max"
	case Minimize:
		return "min"
	default:
		return fmt.Sprintf("sense(%d)", int(s))
	}
}

// Vector is an ordered tuple of objective values in maximize-form.
// Index 0 is the primary objective g (integer-valued); indices 1..K are the
// secondary objectives. Vectors are produced by a solve and never mutated.
type Vector []float64

func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Primary returns g rounded to the nearest integer.
func (v Vector) Primary() int {
	return int(math.Round(v[0]))
}

// Secondary returns the K secondary components. The returned slice aliases v.
func (v Vector) Secondary() []float64 {
	return v[1:]
}

// Normalize converts raw objective values into maximize-form, flipping the
// sign of Minimize components. len(senses) must equal len(raw).
func Normalize(raw []float64, senses []Sense) Vector {
	if len(raw) != len(senses) {
		panic(fmt.Sprintf("objective: %d values for %d senses", len(raw), len(senses)))
	}
	out := make(Vector, len(raw))
	for i, x := range raw {
		if senses[i] == Minimize {
			out[i] = -x
		} else {
			out[i] = x
		}
	}
	return out
}

// Denormalize maps a maximize-form vector back into the declared senses.
func Denormalize(v Vector, senses []Sense) []float64 {
	if len(v) != len(senses) {
		panic(fmt.Sprintf("objective: %d values for %d senses", len(v), len(senses)))
	}
	out := make([]float64, len(v))
	for i, x := range v {
		if senses[i] == Minimize {
			out[i] = -x
		} else {
			out[i] = x
		}
	}
	return out
}

// GE reports a >= b up to tol.
func GE(a, b, tol float64) bool { return a >= b-tol }

// GT reports a > b beyond tol.
func GT(a, b, tol float64) bool { return a > b+tol }

// Dominates reports whether a dominates b in maximize-form:
// a_i >= b_i for all i and a_i > b_i for at least one i, each comparison
// taken with tolerance tol.
func Dominates(a, b Vector, tol float64) bool {
	if len(a) != len(b) {
		panic(fmt.Sprintf("objective: dominance between lengths %d and %d", len(a), len(b)))
	}
	some := false
	for i := range a {
		if !GE(a[i], b[i], tol) {
			return false
		}
		if GT(a[i], b[i], tol) {
			some = true
		}
	}
	return some
}

// WeaklyDominates reports a_i >= b_i for every component, with tolerance.
func WeaklyDominates(a, b Vector, tol float64) bool {
	if len(a) != len(b) {
		panic(fmt.Sprintf("objective: dominance between lengths %d and %d", len(a), len(b)))
	}
	for i := range a {
		if !GE(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

// Equal compares component-wise: exact on the integral primary, within tol on
// the continuous secondaries.
func Equal(a, b Vector, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	if a.Primary() != b.Primary() {
		return false
	}
	for i := 1; i < len(a); i++ {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// Key renders the vector rounded at the tolerance scale, usable as a map key
// for deduplication.
func (v Vector) Key() string {
	var sb strings.Builder
	for i, x := range v {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(strconv.FormatFloat(math.Round(x/DefaultTolerance)*DefaultTolerance, 'g', -1, 64))
	}
	return sb.String()
}
