package registry

import (
	"math"
	"slices"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntPool_InternRepeated(t *testing.T) {
	t.Parallel()

	p := NewIntPool()

	first, err := p.Intern([]int{3, 1, 0, 1}, true)
	require.NoError(t, err)

	for range 10 {
		idx, err := p.Intern([]int{3, 1, 0, 1}, true)
		require.NoError(t, err)
		assert.Equal(t, first, idx)
	}

	assert.Equal(t, 1, p.Len(), spew.Sdump(p.entries))

	second, err := p.Intern([]int{3, 1, 0, 2}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, second)
	assert.Equal(t, 2, p.Len())
}

func TestPool_NotFound(t *testing.T) {
	t.Parallel()

	p := NewFloatPool()

	_, err := p.Intern([]float64{1, 2}, false)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, p.Len())

	idx, err := p.Intern([]float64{1, 2}, true)
	require.NoError(t, err)

	found, err := p.Intern([]float64{1, 2}, false)
	require.NoError(t, err)
	assert.Equal(t, idx, found)
}

func TestPool_StoresCopy(t *testing.T) {
	t.Parallel()

	p := NewIntPool()
	v := []int{1, 2, 3}

	_, err := p.Intern(v, true)
	require.NoError(t, err)

	v[0] = 9
	assert.Equal(t, []int{1, 2, 3}, p.At(0))

	got := p.At(0)
	got[1] = 7
	assert.Equal(t, []int{1, 2, 3}, p.At(0))
}

func TestPool_CollidingHashes(t *testing.T) {
	t.Parallel()

	// Every vector lands in the same bucket; the comparator keeps them apart.
	p := NewPool(func([]int) uint64 { return 42 }, func(a, b []int) bool { return slices.Equal(a, b) })

	vectors := [][]int{{1}, {2}, {1, 2}, {}, {2, 1}}
	for i, v := range vectors {
		idx, err := p.Intern(v, true)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}

	for i, v := range vectors {
		idx, err := p.Intern(v, false)
		require.NoError(t, err)
		assert.Equal(t, i, idx, "vector %v", v)
	}

	assert.Len(t, p.buckets[42], len(vectors))
}

func TestFloatPool_BitwiseEquality(t *testing.T) {
	t.Parallel()

	p := NewFloatPool()

	pos, err := p.Intern([]float64{0}, true)
	require.NoError(t, err)

	neg, err := p.Intern([]float64{math.Copysign(0, -1)}, true)
	require.NoError(t, err)
	assert.NotEqual(t, pos, neg)

	nan1, err := p.Intern([]float64{math.NaN(), 1}, true)
	require.NoError(t, err)

	nan2, err := p.Intern([]float64{math.NaN(), 1}, true)
	require.NoError(t, err)
	assert.Equal(t, nan1, nan2)

	assert.Equal(t, 3, p.Len())
}

func TestHashes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, HashInts([]int{1, 2, 3}), HashInts([]int{1, 2, 3}))
	assert.NotEqual(t, HashInts([]int{1, 2, 3}), HashInts([]int{3, 2, 1}))
	assert.Equal(t, HashFloats([]float64{1.5, -2}), HashFloats([]float64{1.5, -2}))
	assert.NotEqual(t, HashFloats([]float64{1.5}), HashFloats([]float64{2.5}))
	assert.Equal(t, uint64(0), HashInts(nil))
	assert.Equal(t, uint64(0), HashFloats(nil))
}
