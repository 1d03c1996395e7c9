package kernel

import (
	"fmt"
	"slices"

	"numgen/internal/auxiliary"
	"numgen/internal/gen"
	"numgen/internal/workspace"
	"numgen/sparsity"
)

// Linear computes y = A*x for a constant sparse matrix A and a dense vector
// x. Rows of A without nonzeros are structural zeros of y.
type Linear struct {
	signature

	a      *sparsity.Pattern
	values []float64
}

// NewLinear creates y = A*x where A has pattern a and nonzeros values in
// column-major order.
func NewLinear(a *sparsity.Pattern, values []float64) (*Linear, error) {
	if len(values) != a.Nnz() {
		return nil, fmt.Errorf("%w: %d values for %s", ErrValueCount, len(values), a)
	}

	x := sparsity.Dense(a.Cols(), 1)

	y, err := sparsity.Product(a, x)
	if err != nil {
		return nil, err
	}

	return &Linear{
		signature: signature{
			in:  []*sparsity.Pattern{x},
			out: []*sparsity.Pattern{y},
			szW: a.Rows(),
		},
		a:      a,
		values: slices.Clone(values),
	}, nil
}

func (k *Linear) GenerateBody(g *gen.Generator, name string) error {
	g.AddAuxiliary(auxiliary.TagMMSparse)

	var b body

	b.stmt("if (!res[0]) return 0;")
	b.stmt("%s", g.FillN("res[0]", 0, k.out[0].Nnz(), "0"))
	b.stmt("if (arg[0]) %s(%s, %s, arg[0], %s, res[0], %s, %s);",
		auxiliary.TagMMSparse.Routine(),
		g.ConstantName(k.values), g.SparsityName(k.a),
		g.SparsityName(k.in[0]), g.SparsityName(k.out[0]), workspace.Ref(0))
	b.emit(g, name)

	return nil
}
