package job

import (
	"errors"
	"fmt"
	"sort"
)

var ErrCycle = errors.New("cycle detected")

// CycleError lists the nodes that could not be ordered.
type CycleError struct {
	Nodes []int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v among nodes %v", ErrCycle, e.Nodes)
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// topoSort returns node indices in build order.
//
// Nodes are by index in [0, n).
// depsFn(i) yields indices that must be built before i.
//
// The result is deterministic: when multiple nodes are available, we pick the
// smallest index. If a cycle exists, a *CycleError is returned.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		deps := depsFn(i)
		for _, d := range deps {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	// Deterministic traversal.
	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		var stuck []int

		for i := range n {
			if indeg[i] > 0 {
				stuck = append(stuck, i)
			}
		}

		return nil, &CycleError{Nodes: stuck}
	}

	return order, nil
}
