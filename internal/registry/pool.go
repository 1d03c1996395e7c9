package registry

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrNotFound is returned by Intern when adding is not allowed and no equal
// vector is stored.
var ErrNotFound = errors.New("constant not found")

// Pool is an append-only store of distinct vectors.
//
// Lookup buckets candidates by hash and resolves each bucket with an exact
// comparison; several entries may share a hash.
type Pool[T any] struct {
	entries [][]T
	buckets map[uint64][]int
	hash    func([]T) uint64
	equal   func(a, b []T) bool
}

// NewPool creates an empty pool with the given hash and comparator. The hash
// must return equal values for vectors the comparator considers equal.
func NewPool[T any](hash func([]T) uint64, equal func(a, b []T) bool) *Pool[T] {
	return &Pool[T]{
		buckets: make(map[uint64][]int),
		hash:    hash,
		equal:   equal,
	}
}

// IntPool stores integer vectors.
type IntPool = Pool[int]

// FloatPool stores floating-point vectors compared bit for bit.
type FloatPool = Pool[float64]

func NewIntPool() *IntPool {
	return NewPool(HashInts, func(a, b []int) bool { return slices.Equal(a, b) })
}

func NewFloatPool() *FloatPool {
	return NewPool(HashFloats, EqualFloatBits)
}

// Intern returns the index of a stored vector equal to v. When none exists
// and allowAdding is set, a copy of v is appended and its index returned;
// otherwise the error wraps ErrNotFound.
func (p *Pool[T]) Intern(v []T, allowAdding bool) (int, error) {
	h := p.hash(v)

	for _, idx := range p.buckets[h] {
		if p.equal(v, p.entries[idx]) {
			return idx, nil
		}
	}

	if !allowAdding {
		return -1, fmt.Errorf("%w: vector of length %d", ErrNotFound, len(v))
	}

	idx := len(p.entries)
	p.entries = append(p.entries, slices.Clone(v))
	p.buckets[h] = append(p.buckets[h], idx)

	return idx, nil
}

// Len returns the number of distinct vectors stored.
func (p *Pool[T]) Len() int {
	return len(p.entries)
}

// At returns a copy of the vector at index i.
func (p *Pool[T]) At(i int) []T {
	return slices.Clone(p.entries[i])
}

// hashCombine mixes h into seed the way boost::hash_combine does, widened to
// 64 bits.
func hashCombine(seed, h uint64) uint64 {
	return seed ^ (h + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2))
}

// HashInts hashes an integer vector element by element.
func HashInts(v []int) uint64 {
	var seed uint64
	for _, x := range v {
		seed = hashCombine(seed, uint64(x))
	}

	return seed
}

// HashFloats hashes the IEEE-754 bit patterns of v. Each 64-bit word goes
// through a splitmix64 finalizer before combining, so it shares no
// structure with HashInts.
func HashFloats(v []float64) uint64 {
	var seed uint64
	for _, x := range v {
		seed = hashCombine(seed, mix64(math.Float64bits(x)))
	}

	return seed
}

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return z ^ (z >> 31)
}

// EqualFloatBits compares two vectors bit for bit: NaNs with the same payload
// are equal and -0 differs from +0.
func EqualFloatBits(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}

	return true
}
