package registry

import "fmt"

// Identity assigns sequential indices to objects by identity. K must be a
// comparable key such as a pointer or an interface holding a pointer.
type Identity[K comparable] struct {
	index map[K]int
	order []K
}

func NewIdentity[K comparable]() *Identity[K] {
	return &Identity[K]{index: make(map[K]int)}
}

// Register returns the index of k, assigning the next one on first sighting.
// For a new key, onNew (when non-nil) runs after the index is recorded, so a
// recursive Register of the same key from inside onNew returns at once.
// added reports whether k was new.
func (r *Identity[K]) Register(k K, onNew func(index int) error) (index int, added bool, err error) {
	if idx, ok := r.index[k]; ok {
		return idx, false, nil
	}

	idx := len(r.order)
	r.index[k] = idx
	r.order = append(r.order, k)

	if onNew != nil {
		if err := onNew(idx); err != nil {
			return idx, true, err
		}
	}

	return idx, true, nil
}

// Lookup returns the index of k, if registered.
func (r *Identity[K]) Lookup(k K) (int, bool) {
	idx, ok := r.index[k]
	return idx, ok
}

// MustLookup returns the index of k and panics if k was never registered.
func (r *Identity[K]) MustLookup(k K) int {
	idx, ok := r.Lookup(k)
	if !ok {
		panic(fmt.Sprintf("registry: %v was never registered", k))
	}

	return idx
}

func (r *Identity[K]) Len() int {
	return len(r.order)
}
