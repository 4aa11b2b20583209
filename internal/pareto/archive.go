// Package pareto maintains the non-dominated solution archive and the record
// of proven-infeasible epsilon bound tuples used by the enumeration loop.
package pareto

import (
	"github.com/AHMADELQADY/thesis-defence-scheduling-momilp/internal/objective"
)

// Entry is one discovered solution: its full objective vector in
// maximize-form, the epsilon bounds that produced it, and (optionally) the
// underlying decision assignment. Proven is false for time-limit incumbents
// accepted without an optimality certificate.
type Entry struct {
	Z          objective.Vector
	Bounds     objective.Bounds
	Proven     bool
	Assignment any
}

// InsertResult reports the outcome of an Insert: either the entry joined the
// archive, or it was rejected and DominatedBy names a member that weakly
// dominates it.
type InsertResult struct {
	Inserted    bool
	DominatedBy *Entry
}

// Archive is the non-dominated set. The invariant is that no member weakly
// dominates another; Insert is the sole write path and maintains it
// atomically. The archive is not safe for concurrent use; the enumeration
// loop mutates it from a single control path.
type Archive struct {
	tol     float64
	entries []Entry
}

func NewArchive(tol float64) *Archive {
	if tol <= 0 {
		tol = objective.DefaultTolerance
	}
	return &Archive{tol: tol}
}

// Insert adds cand unless an existing member weakly dominates it; on success
// every member the candidate strictly dominates is removed in the same
// operation, so no intermediate state is observable.
func (a *Archive) Insert(cand Entry) InsertResult {
	for i := range a.entries {
		if objective.WeaklyDominates(a.entries[i].Z, cand.Z, a.tol) {
			return InsertResult{DominatedBy: &a.entries[i]}
		}
	}

	kept := a.entries[:0]
	for _, e := range a.entries {
		if !objective.Dominates(cand.Z, e.Z, a.tol) {
			kept = append(kept, e)
		}
	}
	a.entries = append(kept, cand)
	return InsertResult{Inserted: true}
}

// IsDominated reports whether v is weakly dominated by (dominated by or equal
// to) some member.
func (a *Archive) IsDominated(v objective.Vector) bool {
	for i := range a.entries {
		if objective.WeaklyDominates(a.entries[i].Z, v, a.tol) {
			return true
		}
	}
	return false
}

// Covers reports whether some member already meets every epsilon bound in eps
// on the secondary objectives. When it does, the slice defined by eps cannot
// yield anything new: this is the enumerator's dominance pre-check.
func (a *Archive) Covers(eps objective.Bounds) bool {
	for _, e := range a.entries {
		sec := e.Z.Secondary()
		all := true
		for k := range eps {
			if !objective.GE(sec[k], eps[k], a.tol) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func (a *Archive) Len() int { return len(a.entries) }

// Entries returns a copy of the archive in insertion order.
func (a *Archive) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}
