package kernel

import (
	"errors"
	"fmt"
)

var ErrUnknownOp = errors.New("unknown operation")

// ReductionOp selects the scalar a Reduction computes.
type ReductionOp int

const (
	// ReduceDot is the inner product of two inputs.
	ReduceDot ReductionOp = iota
	// ReduceAsum is the sum of absolute values.
	ReduceAsum
	// ReduceNrm2 is the Euclidean norm.
	ReduceNrm2
	// ReduceIamax is the position of the largest absolute nonzero.
	ReduceIamax
)

// ReductionOps lists the reductions by name.
var ReductionOps = []string{"dot", "asum", "nrm2", "iamax"}

func (op ReductionOp) String() string {
	if op < 0 || int(op) >= len(ReductionOps) {
		return "unknown"
	}

	return ReductionOps[op]
}

func ParseReductionOp(name string) (ReductionOp, error) {
	for i, n := range ReductionOps {
		if n == name {
			return ReductionOp(i), nil
		}
	}

	return 0, fmt.Errorf("%w: reduction %q", ErrUnknownOp, name)
}

// ElementwiseOp selects what an Elementwise kernel applies to each nonzero.
type ElementwiseOp int

const (
	// ElementSq squares.
	ElementSq ElementwiseOp = iota
	// ElementSign takes the sign.
	ElementSign
	// ElementScale multiplies by alpha.
	ElementScale
	// ElementAxpy computes alpha*x + y over two inputs.
	ElementAxpy
)

// ElementwiseOps lists the elementwise operations by name.
var ElementwiseOps = []string{"sq", "sign", "scale", "axpy"}

func (op ElementwiseOp) String() string {
	if op < 0 || int(op) >= len(ElementwiseOps) {
		return "unknown"
	}

	return ElementwiseOps[op]
}

func ParseElementwiseOp(name string) (ElementwiseOp, error) {
	for i, n := range ElementwiseOps {
		if n == name {
			return ElementwiseOp(i), nil
		}
	}

	return 0, fmt.Errorf("%w: elementwise %q", ErrUnknownOp, name)
}
