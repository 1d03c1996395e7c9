package kernel

import (
	"fmt"

	"numgen/internal/gen"
	"numgen/internal/workspace"
	"numgen/sparsity"
)

// Projection copies the entries of x that fit another pattern of the same
// shape. Entries outside the source pattern become zero.
type Projection struct {
	signature
}

func NewProjection(from, to *sparsity.Pattern) (*Projection, error) {
	if from.Rows() != to.Rows() || from.Cols() != to.Cols() {
		return nil, fmt.Errorf("%w: cannot project %s onto %s", ErrDimensionMismatch, from, to)
	}

	return &Projection{signature{
		in:  []*sparsity.Pattern{from},
		out: []*sparsity.Pattern{to},
		szW: from.Rows(),
	}}, nil
}

func (k *Projection) GenerateBody(g *gen.Generator, name string) error {
	from, to := k.in[0], k.out[0]

	var b body

	b.stmt("if (!res[0]) return 0;")
	b.ifElse("arg[0]",
		g.Project("arg[0]", 0, from, "res[0]", 0, to, workspace.Ref(0)),
		g.FillN("res[0]", 0, to.Nnz(), "0"))
	b.emit(g, name)

	return nil
}
