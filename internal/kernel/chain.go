package kernel

import (
	"errors"
	"fmt"

	"numgen/internal/gen"
	"numgen/internal/workspace"
)

var ErrEmptyChain = errors.New("chain has no stages")

// Chain feeds the output of each stage into the next. Stages are emitted as
// dependencies and called through the kernel calling convention; a kernel
// used by several stages is emitted once.
type Chain struct {
	signature

	stages []Kernel
	// offsets of the intermediate results in w, then the stage scratch.
	offsets []int
	scratch int
}

// NewChain composes single-input single-output kernels. The output pattern
// of each stage must equal the input pattern of the next.
func NewChain(stages ...Kernel) (*Chain, error) {
	if len(stages) == 0 {
		return nil, ErrEmptyChain
	}

	c := &Chain{stages: append([]Kernel(nil), stages...)}

	for i, st := range stages {
		in, out := st.Inputs(), st.Outputs()
		if len(in) != 1 || len(out) != 1 {
			return nil, fmt.Errorf("%w: stage %d has %d inputs and %d outputs", ErrArity, i, len(in), len(out))
		}

		if i > 0 {
			prev := stages[i-1].Outputs()[0]
			if !prev.Equal(in[0]) {
				return nil, fmt.Errorf("%w: stage %d produces %s, stage %d expects %s",
					ErrDimensionMismatch, i-1, prev, i, in[0])
			}
		}

		iw, w := st.Work()
		c.szIW = max(c.szIW, iw)
		c.szW = max(c.szW, w)

		if i < len(stages)-1 {
			c.offsets = append(c.offsets, c.scratch)
			c.scratch += out[0].Nnz()
		}
	}

	c.in = stages[0].Inputs()
	c.out = stages[len(stages)-1].Outputs()
	c.szW += c.scratch

	return c, nil
}

// Stages returns the stages in call order.
func (c *Chain) Stages() []Kernel {
	return append([]Kernel(nil), c.stages...)
}

func (c *Chain) GenerateBody(g *gen.Generator, name string) error {
	names := make([]string, len(c.stages))

	for i, st := range c.stages {
		if _, err := g.AddDependency(st); err != nil {
			return fmt.Errorf("stage %d: %w", i, err)
		}

		names[i] = g.DependencyName(st)
	}

	var b body

	b.declare("const d* a[1];")
	b.declare("d* r[1];")
	b.stmt("if (!res[0]) return 0;")
	b.assign("a[0]", "arg[0]")

	last := len(c.stages) - 1
	for i := range c.stages {
		if i == last {
			b.assign("r[0]", "res[0]")
		} else {
			b.assign("r[0]", workspace.Ref(c.offsets[i]))
		}

		b.stmt("if (%s(a, r, iw, %s)) return 1;", names[i], workspace.Ref(c.scratch))

		if i < last {
			b.assign("a[0]", "r[0]")
		}
	}

	b.emit(g, name)

	return nil
}
