package kernel

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numgen/internal/auxiliary"
	"numgen/internal/gen"
	"numgen/sparsity"
)

func newGenerator(t *testing.T, raw map[string]any) *gen.Generator {
	t.Helper()

	g, err := gen.New(raw)
	require.NoError(t, err)

	return g
}

func generate(t *testing.T, raw map[string]any, k Kernel, name string) string {
	t.Helper()

	g := newGenerator(t, raw)
	require.NoError(t, g.AddFunction(k, name))

	return g.Serialize()
}

func mustTriplet(t *testing.T, nrow, ncol int, rows, cols []int) *sparsity.Pattern {
	t.Helper()

	p, err := sparsity.Triplet(nrow, ncol, rows, cols)
	require.NoError(t, err)

	return p
}

func TestLinear(t *testing.T) {
	t.Parallel()

	a := mustTriplet(t, 2, 3, []int{0, 1, 1}, []int{0, 1, 2})

	k, err := NewLinear(a, []float64{1, 2, 3})
	require.NoError(t, err)

	iw, w := k.Work()
	assert.Equal(t, 0, iw)
	assert.Equal(t, 2, w)

	doc := generate(t, nil, k, "lin")

	assert.Contains(t, doc, "int lin(const d** arg, d** res, int* iw, d* w) {\n")
	assert.Contains(t, doc, "  ng_fill_n(res[0], 2, 0);\n")
	assert.Contains(t, doc, "  if (arg[0]) ng_mm_sparse(c0, s0, arg[0], s1, res[0], s2, w);\n")
	assert.Contains(t, doc, "static const d c0[] = {1., 2., 3.};\n")
	assert.Contains(t, doc, "int lin_n_in(void) { return 1; }\n")
	assert.Contains(t, doc, "int lin_n_out(void) { return 1; }\n")
	assert.Contains(t, doc, "int lin_sparsity_in(int i, int* nrow, int* ncol, const int** colind, const int** row) {\n")
	assert.Contains(t, doc, "    case 0: s = s1; break;\n")
	assert.Contains(t, doc, "    case 0: s = s2; break;\n")
	assert.Contains(t, doc, "  if (sz_iw) *sz_iw = 0;\n  if (sz_w) *sz_w = 2;\n")

	_, err = NewLinear(a, []float64{1})
	require.ErrorIs(t, err, ErrValueCount)
}

func TestLinear_EmptyRowsAreStructuralZeros(t *testing.T) {
	t.Parallel()

	// [x .]
	// [. .]
	// [. x]
	a := mustTriplet(t, 3, 2, []int{0, 2}, []int{0, 1})

	k, err := NewLinear(a, []float64{4, 5})
	require.NoError(t, err)

	out := k.Outputs()[0]
	assert.Equal(t, 3, out.Rows())
	assert.Equal(t, []int{0, 2}, out.Row())

	_, w := k.Work()
	assert.Equal(t, 3, w)

	doc := generate(t, nil, k, "lin")
	assert.Contains(t, doc, "  ng_fill_n(res[0], 2, 0);\n")
}

func TestProjection(t *testing.T) {
	t.Parallel()

	k, err := NewProjection(sparsity.Dense(2, 2), sparsity.Diagonal(2))
	require.NoError(t, err)

	doc := generate(t, nil, k, "proj")
	assert.Contains(t, doc, "    ng_project(arg[0], s0, res[0], s1, w);\n")
	assert.Contains(t, doc, "    ng_fill_n(res[0], 2, 0);\n")

	same, err := NewProjection(sparsity.Dense(2, 2), sparsity.Dense(2, 2))
	require.NoError(t, err)

	doc = generate(t, nil, same, "copy")
	assert.Contains(t, doc, "    ng_copy_n(arg[0], 4, res[0]);\n")
	assert.NotContains(t, doc, "ng_project(")

	_, err = NewProjection(sparsity.Dense(2, 2), sparsity.Dense(3, 2))
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestReduction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   ReductionOp
		nIn  int
		want string
	}{
		{ReduceDot, 2, "  res[0][0] = arg[0] && arg[1] ? ng_dot(3, arg[0], 1, arg[1], 1) : 0;\n"},
		{ReduceAsum, 1, "  res[0][0] = arg[0] ? ng_asum(3, arg[0], 1) : 0;\n"},
		{ReduceNrm2, 1, "  res[0][0] = arg[0] ? ng_nrm2(3, arg[0], 1) : 0;\n"},
		{ReduceIamax, 1, "  res[0][0] = arg[0] ? (d) ng_iamax(3, arg[0], 1) : 0;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			t.Parallel()

			k, err := NewReduction(tt.op, sparsity.Dense(3, 1))
			require.NoError(t, err)
			assert.Len(t, k.Inputs(), tt.nIn)
			assert.True(t, k.Outputs()[0].IsScalar())

			doc := generate(t, nil, k, "red")
			assert.Contains(t, doc, tt.want)
		})
	}

	_, err := NewReduction(ReductionOp(42), sparsity.Dense(3, 1))
	require.ErrorIs(t, err, ErrUnknownOp)
}

func TestElementwise(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op    ElementwiseOp
		alpha float64
		want  []string
	}{
		{ElementSq, 0, []string{"  int i;\n", "    for (i=0; i<3; ++i) res[0][i] = ng_sq(arg[0][i]);\n"}},
		{ElementSign, 0, []string{"    for (i=0; i<3; ++i) res[0][i] = ng_sign(arg[0][i]);\n"}},
		{ElementScale, 2, []string{"    ng_copy_n(arg[0], 3, res[0]);\n", "  ng_scal(3, 2., res[0], 1);\n"}},
		{ElementAxpy, -1, []string{"    ng_copy_n(arg[1], 3, res[0]);\n", "  if (arg[0]) ng_axpy(3, -1., arg[0], 1, res[0], 1);\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			t.Parallel()

			k, err := NewElementwise(tt.op, sparsity.Dense(3, 1), tt.alpha)
			require.NoError(t, err)

			doc := generate(t, nil, k, "ew")
			for _, w := range tt.want {
				assert.Contains(t, doc, w)
			}

			assert.Contains(t, doc, "    ng_fill_n(res[0], 3, 0);\n")
		})
	}
}

func TestTranspose(t *testing.T) {
	t.Parallel()

	sp := mustTriplet(t, 2, 3, []int{0, 1, 1}, []int{0, 1, 2})
	k := NewTranspose(sp)

	iw, w := k.Work()
	assert.Equal(t, 2, iw)
	assert.Equal(t, 0, w)
	assert.True(t, k.Outputs()[0].Equal(sp.Transpose()))

	doc := generate(t, nil, k, "tr")
	assert.Contains(t, doc, "    ng_trans(arg[0], s0, res[0], s1, iw);\n")
}

func TestChain(t *testing.T) {
	t.Parallel()

	v := sparsity.Dense(3, 1)

	scale, err := NewElementwise(ElementScale, v, 2)
	require.NoError(t, err)

	sq, err := NewElementwise(ElementSq, v, 0)
	require.NoError(t, err)

	c, err := NewChain(scale, sq, scale)
	require.NoError(t, err)

	_, w := c.Work()
	assert.Equal(t, 6, w)

	g := newGenerator(t, nil)
	require.NoError(t, g.AddFunction(c, "pipe"))

	doc := g.Serialize()

	assert.Equal(t, 1, strings.Count(doc, "int f0(const d** arg"), doc)
	assert.Equal(t, 1, strings.Count(doc, "int f1(const d** arg"), doc)
	assert.NotContains(t, doc, "int f2(")
	assert.NotContains(t, doc, "f0_n_in", "dependencies get no metadata")

	assert.Contains(t, doc, strings.Join([]string{
		"  a[0] = arg[0];",
		"  r[0] = w;",
		"  if (f0(a, r, iw, w+6)) return 1;",
		"  a[0] = r[0];",
		"  r[0] = w+3;",
		"  if (f1(a, r, iw, w+6)) return 1;",
		"  a[0] = r[0];",
		"  r[0] = res[0];",
		"  if (f0(a, r, iw, w+6)) return 1;",
	}, "\n"))

	assert.Equal(t, "f0", g.DependencyName(scale))
	assert.Equal(t, "f1", g.DependencyName(sq))
}

func TestChain_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewChain()
	require.ErrorIs(t, err, ErrEmptyChain)

	dot, err := NewReduction(ReduceDot, sparsity.Dense(3, 1))
	require.NoError(t, err)

	_, err = NewChain(dot)
	require.ErrorIs(t, err, ErrArity)

	tr := NewTranspose(sparsity.Dense(2, 3))
	sq, err := NewElementwise(ElementSq, sparsity.Dense(3, 1), 0)
	require.NoError(t, err)

	_, err = NewChain(tr, sq)
	require.ErrorIs(t, err, ErrDimensionMismatch, spew.Sdump(tr.Outputs()))
}

func TestEntryWrappers(t *testing.T) {
	t.Parallel()

	a := mustTriplet(t, 2, 3, []int{0, 1, 1}, []int{0, 1, 2})

	lin, err := NewLinear(a, []float64{1, 2, 3})
	require.NoError(t, err)

	other := NewTranspose(a)

	g := newGenerator(t, map[string]any{"mex": true, "main": true})
	require.NoError(t, g.AddFunction(lin, "lin"))
	require.NoError(t, g.AddFunction(other, "other"))

	doc := g.Serialize()

	assert.Equal(t, 1, strings.Count(doc, "void mex_eval("))
	assert.Equal(t, 1, strings.Count(doc, "int main_eval("))
	assert.Contains(t, doc, "void mexFunction(")
	assert.True(t, g.HasAuxiliary(auxiliary.TagFromMex))
	assert.True(t, g.HasAuxiliary(auxiliary.TagToMex))

	assert.Contains(t, doc, `Evaluation of \"lin\" failed. Too many input arguments (%d, max 1)`)
	assert.Contains(t, doc, "  arg[0] = argc>0 ? ng_from_mex(argv[0], w, s1, w+3) : 0;\n")
	assert.Contains(t, doc, "  resv[0] = ng_to_mex(s2, res);\n")
	assert.Contains(t, doc, "  if (lin(arg, res, iw, w+6)) mexErrMsgIdAndTxt(")

	assert.Contains(t, doc, "  for (j=0; j<3; ++j) if (scanf(\"%lg\", a++)<=0) return 2;\n")
	assert.Contains(t, doc, "  res[0] = w+3;\n")
	assert.Contains(t, doc, "  flag = lin(arg, res, iw, w+5);\n")
	assert.Contains(t, doc, "  for (j=0; j<2; ++j) mexPrintf(\"%g \", res[0][j]);\n")
}

func TestMainEval_Printf(t *testing.T) {
	t.Parallel()

	k, err := NewElementwise(ElementAxpy, sparsity.Dense(2, 1), 1)
	require.NoError(t, err)

	doc := generate(t, map[string]any{"main": true, "real_t": "float"}, k, "axpy")

	assert.Contains(t, doc, "#include <stdio.h>\n")
	assert.Contains(t, doc, "#define d float\n")
	assert.Contains(t, doc, "if (scanf(\"%g\", a++)<=0) return 2;")
	assert.Contains(t, doc, "  arg[0] = w;\n  arg[1] = w+2;\n  res[0] = w+4;\n")
	assert.Contains(t, doc, "  for (j=0; j<2; ++j) printf(\"%g \", res[0][j]);\n  printf(\"\\n\");\n")
	assert.NotContains(t, doc, "mex_eval")
}

func TestOps_Parse(t *testing.T) {
	t.Parallel()

	for i, name := range ReductionOps {
		op, err := ParseReductionOp(name)
		require.NoError(t, err)
		assert.Equal(t, ReductionOp(i), op)
		assert.Equal(t, name, op.String())
	}

	for i, name := range ElementwiseOps {
		op, err := ParseElementwiseOp(name)
		require.NoError(t, err)
		assert.Equal(t, ElementwiseOp(i), op)
	}

	_, err := ParseReductionOp("sum")
	require.ErrorIs(t, err, ErrUnknownOp)

	_, err = ParseElementwiseOp("exp")
	require.ErrorIs(t, err, ErrUnknownOp)

	assert.Equal(t, "unknown", ElementwiseOp(-1).String())
}

func TestMainEval_LongDouble(t *testing.T) {
	t.Parallel()

	k, err := NewElementwise(ElementSq, sparsity.Dense(3, 1), 0)
	require.NoError(t, err)

	doc := generate(t, map[string]any{"main": true, "real_t": "long double"}, k, "square")

	assert.Contains(t, doc, "if (scanf(\"%Lg\", a++)<=0) return 2;")
	assert.Contains(t, doc, "printf(\"%Lg \", res[0][j]);")
}
