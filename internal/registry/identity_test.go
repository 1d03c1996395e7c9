package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct{ name string }

func TestIdentity_Register(t *testing.T) {
	t.Parallel()

	r := NewIdentity[*node]()
	a, b := &node{"a"}, &node{"a"}

	calls := 0
	onNew := func(int) error {
		calls++
		return nil
	}

	idx, added, err := r.Register(a, onNew)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 0, idx)

	idx, added, err = r.Register(a, onNew)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 0, idx)

	// Equal content, different object.
	idx, added, err = r.Register(b, onNew)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 1, idx)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 1, r.MustLookup(b))
}

func TestIdentity_RecursiveRegister(t *testing.T) {
	t.Parallel()

	r := NewIdentity[*node]()
	a := &node{"a"}

	var inner int

	_, _, err := r.Register(a, func(int) error {
		idx, added, err := r.Register(a, nil)
		inner = idx
		assert.False(t, added)

		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 0, inner)
	assert.Equal(t, 1, r.Len())
}

func TestIdentity_CallbackError(t *testing.T) {
	t.Parallel()

	r := NewIdentity[*node]()
	boom := errors.New("boom")

	_, added, err := r.Register(&node{}, func(int) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.True(t, added)
}

func TestIdentity_Lookup(t *testing.T) {
	t.Parallel()

	r := NewIdentity[*node]()
	a := &node{"a"}

	_, ok := r.Lookup(a)
	assert.False(t, ok)
	assert.Panics(t, func() { r.MustLookup(a) })

	_, _, _ = r.Register(a, nil)
	assert.Equal(t, 0, r.MustLookup(a))
}
