package kernel

import (
	"fmt"

	"numgen/internal/auxiliary"
	"numgen/internal/gen"
	"numgen/sparsity"
)

// Reduction maps the nonzeros of its input to one scalar.
type Reduction struct {
	signature

	op ReductionOp
}

// NewReduction creates a reduction over inputs with pattern sp. ReduceDot
// takes two inputs of that pattern, the others take one.
func NewReduction(op ReductionOp, sp *sparsity.Pattern) (*Reduction, error) {
	in := []*sparsity.Pattern{sp}

	switch op {
	case ReduceDot:
		in = append(in, sp)
	case ReduceAsum, ReduceNrm2, ReduceIamax:
	default:
		return nil, fmt.Errorf("%w: reduction %d", ErrUnknownOp, op)
	}

	return &Reduction{
		signature: signature{
			in:  in,
			out: []*sparsity.Pattern{sparsity.Scalar()},
		},
		op: op,
	}, nil
}

func (k *Reduction) Op() ReductionOp { return k.op }

func (k *Reduction) GenerateBody(g *gen.Generator, name string) error {
	n := k.in[0].Nnz()

	var value string

	switch k.op {
	case ReduceDot:
		value = fmt.Sprintf("arg[0] && arg[1] ? %s : 0", g.Dot(n, "arg[0]", 1, "arg[1]", 1))
	case ReduceAsum:
		value = fmt.Sprintf("arg[0] ? %s : 0", call(g, auxiliary.TagAsum, n))
	case ReduceNrm2:
		value = fmt.Sprintf("arg[0] ? %s : 0", call(g, auxiliary.TagNrm2, n))
	case ReduceIamax:
		// All zeros: the first position wins, no position when empty.
		zero := 0
		if n == 0 {
			zero = -1
		}

		value = fmt.Sprintf("arg[0] ? (d) %s : %d", call(g, auxiliary.TagIamax, n), zero)
	}

	var b body

	b.stmt("if (!res[0]) return 0;")
	b.assign("res[0][0]", value)
	b.emit(g, name)

	return nil
}

// call returns a strided call of a one-vector routine over arg[0].
func call(g *gen.Generator, tag auxiliary.Tag, n int) string {
	g.AddAuxiliary(tag)
	return fmt.Sprintf("%s(%d, arg[0], 1)", tag.Routine(), n)
}
