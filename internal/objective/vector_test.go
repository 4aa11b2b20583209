package objective

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominates(t *testing.T) {
	tol := DefaultTolerance

	a := Vector{5, 10, 2}
	b := Vector{5, 3, 1}

	assert.True(t, Dominates(a, b, tol))
	assert.False(t, Dominates(b, a, tol))

	// Equal vectors do not dominate each other, but weakly dominate.
	assert.False(t, Dominates(a, a.Clone(), tol))
	assert.True(t, WeaklyDominates(a, a.Clone(), tol))

	// Incomparable pair.
	c := Vector{5, 10, 2}
	d := Vector{5, 3, 9}
	assert.False(t, Dominates(c, d, tol))
	assert.False(t, Dominates(d, c, tol))
}

func TestDominatesTolerance(t *testing.T) {
	tol := DefaultTolerance

	// A sub-tolerance advantage is noise, not strict improvement.
	a := Vector{5, 10 + tol/10, 2}
	b := Vector{5, 10, 2}
	assert.False(t, Dominates(a, b, tol))
	assert.True(t, WeaklyDominates(a, b, tol))
	assert.True(t, Equal(a, b, tol))

	// Beyond tolerance it counts.
	a2 := Vector{5, 10 + 10*tol, 2}
	assert.True(t, Dominates(a2, b, tol))
}

func TestEqualPrimaryExact(t *testing.T) {
	a := Vector{5.0000004, 1, 1}
	b := Vector{5, 1, 1}
	assert.True(t, Equal(a, b, DefaultTolerance))
	assert.Equal(t, 5, a.Primary())

	c := Vector{6, 1, 1}
	assert.False(t, Equal(a, c, DefaultTolerance))
}

func TestNormalizeRoundTrip(t *testing.T) {
	senses := []Sense{Maximize, Maximize, Minimize}
	raw := []float64{5, 3, 7}

	v := Normalize(raw, senses)
	require.Equal(t, Vector{5, 3, -7}, v)
	assert.Equal(t, raw, Denormalize(v, senses))
}

func TestBoundsTighterOrEqual(t *testing.T) {
	tol := DefaultTolerance

	loose := Bounds{1, 2}
	tight := Bounds{3, 2}

	assert.True(t, tight.TighterOrEqual(loose, tol))
	assert.False(t, loose.TighterOrEqual(tight, tol))
	assert.True(t, loose.TighterOrEqual(loose.Clone(), tol))
}

func TestVectorKey(t *testing.T) {
	a := Vector{5, 10.0000000001, 2}
	b := Vector{5, 10, 2}
	assert.Equal(t, b.Key(), a.Key())

	c := Vector{5, 10.5, 2}
	assert.NotEqual(t, b.Key(), c.Key())
}
