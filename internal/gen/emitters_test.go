package gen

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numgen/internal/auxiliary"
	"numgen/sparsity"
)

func TestCopyN(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)

	assert.Equal(t, "y[3] = x[2];", g.CopyN("x", 2, 1, "y", 3))
	assert.False(t, g.HasAuxiliary(auxiliary.TagCopyN), "single element copies stay inline")

	assert.Equal(t, "ng_copy_n(x+2, 4, y);", g.CopyN("x", 2, 4, "y", 0))
	assert.True(t, g.HasAuxiliary(auxiliary.TagCopyN))

	// The destination offset folds into the pointer.
	assert.Equal(t, "ng_copy_n(x, 5, y+3);", g.CopyN("x", 0, 5, "y", 3))

	for i := range 10 {
		g.CopyN("x", i, 5, "y", i)
	}

	assert.Equal(t, 1, strings.Count(g.Serialize(), "void ng_copy_n("))

	assert.Panics(t, func() { g.CopyN("x", 0, -1, "y", 0) })
	assert.Panics(t, func() { g.CopyN("x", -2, 3, "y", 0) })
}

func TestFillN(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)

	assert.Equal(t, "r[0] = 5.;", g.FillN("r", 0, 1, "5."))
	assert.False(t, g.HasAuxiliary(auxiliary.TagFillN))

	assert.Equal(t, "ng_fill_n(w+1, 3, 0);", g.FillN("w", 1, 3, "0"))
	assert.True(t, g.HasAuxiliary(auxiliary.TagFillN))

	assert.Panics(t, func() { g.FillN("w", -1, 3, "0") })
}

func TestDot(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)

	assert.Equal(t, "ng_dot(3, x, 1, y, 2)", g.Dot(3, "x", 1, "y", 2))
	assert.True(t, g.HasAuxiliary(auxiliary.TagDot))

	// A one-element product still goes through the routine.
	assert.Equal(t, "ng_dot(1, a, 1, b, 1)", g.Dot(1, "a", 1, "b", 1))
}

func TestProject_SamePattern(t *testing.T) {
	t.Parallel()

	p := sparsity.Dense(2, 2)

	tests := []struct {
		name string
		dst  *sparsity.Pattern
	}{
		{"same object", p},
		{"equal structure", sparsity.Dense(2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newTestGenerator(t, nil)
			ref := newTestGenerator(t, nil)

			got := g.Project("x", 0, p, "y", 1, tt.dst, "w")

			assert.Equal(t, ref.CopyN("x", 0, p.Nnz(), "y", 1), got)
			assert.False(t, g.HasAuxiliary(auxiliary.TagProject))
		})
	}
}

func TestProject_DifferentPattern(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)

	src := sparsity.Dense(2, 2)
	dst := sparsity.Diagonal(2)

	got := g.Project("x", 0, src, "y", 1, dst, "w")

	assert.Equal(t, "ng_project(x, s0, y+1, s1, w);", got)
	assert.True(t, g.HasAuxiliary(auxiliary.TagProject))
	assert.False(t, g.HasAuxiliary(auxiliary.TagCopyN))
}

func TestMex(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)
	p := sparsity.Dense(3, 1)

	assert.Equal(t, "ng_to_mex(s0, 0)", g.ToMex(p, "0"))
	assert.Equal(t, "ng_from_mex(argv[0], w+4, s0, w)", g.FromMex("argv[0]", "w", 4, p, "w"))

	assert.True(t, g.HasAuxiliary(auxiliary.TagFromMex))
	assert.True(t, g.HasAuxiliary(auxiliary.TagFillN))

	doc := g.Serialize()
	assert.Equal(t, 1, strings.Count(doc, "#include <mex.h>"))

	fill := strings.Index(doc, "void ng_fill_n(")
	from := strings.Index(doc, "ng_from_mex(const mxArray")
	require.GreaterOrEqual(t, fill, 0)
	assert.Less(t, fill, from)
}

func TestFormatReal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0."},
		{"negative zero", math.Copysign(0, -1), "-0."},
		{"integer", 3, "3."},
		{"negative integer", -2, "-2."},
		{"half", 0.5, "5.0000000000000000e-01"},
		{"tenth", 0.1, "1.0000000000000001e-01"},
		{"two to the 63", math.Ldexp(1, 63), "9.2233720368547758e+18"},
		{"nan", math.NaN(), "NAN"},
		{"inf", math.Inf(1), "INFINITY"},
		{"negative inf", math.Inf(-1), "-INFINITY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatReal(tt.in))
		})
	}
}

func TestFormatReal_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0.1, 1.0 / 3, -2.5e-310, 1e300, math.Pi, -7.25, 123456789} {
		got, err := strconv.ParseFloat(strings.TrimSuffix(FormatReal(v), "."), 64)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(v), math.Float64bits(got), "value %v", v)
	}
}

func TestPrintf(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)
	assert.Equal(t, `printf("%g\n", x[0]);`, g.Printf(`%g\n`, "x[0]"))
	assert.Contains(t, g.Serialize(), "#include <stdio.h>")

	m := newTestGenerator(t, map[string]any{"mex": true})
	assert.Equal(t, `mexPrintf("done\n");`, m.Printf(`done\n`))
	assert.Equal(t, `printf("%g %g\n", a, b);`, g.Printf(`%g %g\n`, "a", "b"))
	assert.Panics(t, func() { g.Printf(`%g %g\n`, "", "b") })
	assert.NotContains(t, m.Serialize(), "#include <stdio.h>")
}

func TestAssign(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "  a = b+1;\n", Assign("a", "b+1"))
}
