package kernel

import (
	"fmt"

	"numgen/internal/auxiliary"
	"numgen/internal/gen"
	"numgen/sparsity"
)

// Elementwise applies an operation to each nonzero. The output has the
// pattern of the input.
type Elementwise struct {
	signature

	op    ElementwiseOp
	alpha float64
}

// NewElementwise creates an elementwise kernel over pattern sp. alpha is used
// by ElementScale and ElementAxpy.
func NewElementwise(op ElementwiseOp, sp *sparsity.Pattern, alpha float64) (*Elementwise, error) {
	in := []*sparsity.Pattern{sp}

	switch op {
	case ElementAxpy:
		in = append(in, sp)
	case ElementSq, ElementSign, ElementScale:
	default:
		return nil, fmt.Errorf("%w: elementwise %d", ErrUnknownOp, op)
	}

	return &Elementwise{
		signature: signature{
			in:  in,
			out: []*sparsity.Pattern{sp},
		},
		op:    op,
		alpha: alpha,
	}, nil
}

func (k *Elementwise) Op() ElementwiseOp { return k.op }

func (k *Elementwise) GenerateBody(g *gen.Generator, name string) error {
	n := k.out[0].Nnz()
	zero := g.FillN("res[0]", 0, n, "0")
	alpha := gen.FormatReal(k.alpha)

	var b body

	b.stmt("if (!res[0]) return 0;")

	switch k.op {
	case ElementSq, ElementSign:
		tag := auxiliary.TagSq
		if k.op == ElementSign {
			tag = auxiliary.TagSign
		}

		g.AddAuxiliary(tag)
		b.declare("int i;")
		b.ifElse("arg[0]",
			fmt.Sprintf("for (i=0; i<%d; ++i) res[0][i] = %s(arg[0][i]);", n, tag.Routine()),
			zero)
	case ElementScale:
		g.AddAuxiliary(auxiliary.TagScal)
		b.ifElse("arg[0]", g.CopyN("arg[0]", 0, n, "res[0]", 0), zero)
		b.stmt("%s(%d, %s, res[0], 1);", auxiliary.TagScal.Routine(), n, alpha)
	case ElementAxpy:
		g.AddAuxiliary(auxiliary.TagAxpy)
		b.ifElse("arg[1]", g.CopyN("arg[1]", 0, n, "res[0]", 0), zero)
		b.stmt("if (arg[0]) %s(%d, %s, arg[0], 1, res[0], 1);", auxiliary.TagAxpy.Routine(), n, alpha)
	}

	b.emit(g, name)

	return nil
}
