package kernel

import (
	"numgen/internal/auxiliary"
	"numgen/internal/gen"
	"numgen/internal/workspace"
	"numgen/sparsity"
)

// Transpose reorders the nonzeros of a matrix into its transpose.
type Transpose struct {
	signature
}

func NewTranspose(sp *sparsity.Pattern) *Transpose {
	return &Transpose{signature{
		in:   []*sparsity.Pattern{sp},
		out:  []*sparsity.Pattern{sp.Transpose()},
		szIW: sp.Rows(),
	}}
}

func (k *Transpose) GenerateBody(g *gen.Generator, name string) error {
	g.AddAuxiliary(auxiliary.TagTrans)

	var b body

	b.stmt("if (!res[0]) return 0;")
	b.ifElse("arg[0]",
		auxiliary.TagTrans.Routine()+"(arg[0], "+g.SparsityName(k.in[0])+", res[0], "+
			g.SparsityName(k.out[0])+", "+workspace.IntRef(0)+");",
		g.FillN("res[0]", 0, k.out[0].Nnz(), "0"))
	b.emit(g, name)

	return nil
}
