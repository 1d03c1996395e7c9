package gen

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"numgen/internal/auxiliary"
	"numgen/internal/workspace"
)

// maxExactInt bounds the magnitudes printed in integer form.
const maxExactInt = 1 << 63

func checkNonNegative(op, what string, v int) {
	if v < 0 {
		panic(fmt.Sprintf("gen: %s with negative %s %d", op, what, v))
	}
}

// CopyN returns a statement copying n elements from arg+argOff to res+resOff.
// A single element is copied inline without the copy_n routine.
func (g *Generator) CopyN(arg string, argOff, n int, res string, resOff int) string {
	checkNonNegative("CopyN", "count", n)
	checkNonNegative("CopyN", "source offset", argOff)
	checkNonNegative("CopyN", "target offset", resOff)

	if n == 1 {
		return fmt.Sprintf("%s[%d] = %s[%d];", res, resOff, arg, argOff)
	}

	g.AddAuxiliary(auxiliary.TagCopyN)

	return fmt.Sprintf("%s(%s, %d, %s);",
		auxiliary.TagCopyN.Routine(), workspace.Offset(arg, argOff), n, workspace.Offset(res, resOff))
}

// FillN returns a statement setting n elements at res+resOff to the
// expression v.
func (g *Generator) FillN(res string, resOff, n int, v string) string {
	checkNonNegative("FillN", "count", n)
	checkNonNegative("FillN", "offset", resOff)

	if n == 1 {
		return fmt.Sprintf("%s[%d] = %s;", res, resOff, v)
	}

	g.AddAuxiliary(auxiliary.TagFillN)

	return fmt.Sprintf("%s(%s, %d, %s);", auxiliary.TagFillN.Routine(), workspace.Offset(res, resOff), n, v)
}

// Dot returns an expression for the inner product of two strided vectors.
func (g *Generator) Dot(n int, x string, incX int, y string, incY int) string {
	checkNonNegative("Dot", "count", n)
	g.AddAuxiliary(auxiliary.TagDot)

	return fmt.Sprintf("%s(%d, %s, %d, %s, %d)", auxiliary.TagDot.Routine(), n, x, incX, y, incY)
}

// Project returns a statement copying the nonzeros of arg (pattern spArg)
// into res (pattern spRes). Identical patterns reduce to CopyN.
func (g *Generator) Project(arg string, argOff int, spArg Pattern, res string, resOff int, spRes Pattern, w string) string {
	if samePattern(spArg, spRes) {
		return g.CopyN(arg, argOff, spArg.Nnz(), res, resOff)
	}

	checkNonNegative("Project", "source offset", argOff)
	checkNonNegative("Project", "target offset", resOff)

	g.AddAuxiliary(auxiliary.TagProject)

	return fmt.Sprintf("%s(%s, %s, %s, %s, %s);", auxiliary.TagProject.Routine(),
		workspace.Offset(arg, argOff), g.SparsityName(spArg),
		workspace.Offset(res, resOff), g.SparsityName(spRes), w)
}

func samePattern(a, b Pattern) bool {
	return a == b || slices.Equal(a.Compress(), b.Compress())
}

// ToMex returns an expression creating a host sparse matrix with pattern sp.
// When data is not "0", it receives the address of the matrix values.
func (g *Generator) ToMex(sp Pattern, data string) string {
	g.AddInclude("mex.h", false)
	g.AddAuxiliary(auxiliary.TagToMex)

	return fmt.Sprintf("%s(%s, %s)", auxiliary.TagToMex.Routine(), g.SparsityName(sp), data)
}

// FromMex returns an expression reading the host matrix arg into
// res+resOff with pattern sp, using w as dense scratch. It evaluates to the
// target pointer.
func (g *Generator) FromMex(arg, res string, resOff int, sp Pattern, w string) string {
	checkNonNegative("FromMex", "offset", resOff)

	g.AddInclude("mex.h", false)
	g.AddAuxiliary(auxiliary.TagFromMex)

	return fmt.Sprintf("%s(%s, %s, %s, %s)", auxiliary.TagFromMex.Routine(),
		arg, workspace.Offset(res, resOff), g.SparsityName(sp), w)
}

// FormatReal renders v as a C floating literal that reads back to the same
// value. Non-finite values use the math.h macros.
func FormatReal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NAN"
	case math.IsInf(v, 1):
		return "INFINITY"
	case math.IsInf(v, -1):
		return "-INFINITY"
	case v == 0 && math.Signbit(v):
		return "-0."
	case v == math.Trunc(v) && math.Abs(v) < maxExactInt:
		return strconv.FormatInt(int64(v), 10) + "."
	default:
		return strconv.FormatFloat(v, 'e', 16, 64)
	}
}

// Printf returns a print statement. In mex mode it goes to the host console,
// otherwise to stdout. format is the body of a C string literal. Every
// argument is passed on; an empty one panics.
func (g *Generator) Printf(format string, args ...string) string {
	fn := "printf"
	if g.opts.Mex {
		fn = "mexPrintf"
		g.AddInclude("mex.h", false)
	} else {
		g.AddInclude("stdio.h", false)
	}

	if lo.Contains(args, "") {
		panic("gen: Printf with an empty argument")
	}

	parts := append([]string{`"` + format + `"`}, args...)

	return fmt.Sprintf("%s(%s);", fn, strings.Join(parts, ", "))
}

// Assign returns an indented assignment line.
func Assign(lhs, rhs string) string {
	return "  " + lhs + " = " + rhs + ";\n"
}
