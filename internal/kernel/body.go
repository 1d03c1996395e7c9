package kernel

import (
	"errors"
	"fmt"
	"strings"

	"numgen/internal/gen"
)

var (
	ErrValueCount        = errors.New("value count does not match pattern")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrArity             = errors.New("unsupported number of inputs or outputs")
)

// body collects the lines of one generated function.
type body struct {
	decls []string
	text  strings.Builder
}

func (b *body) declare(decl string) {
	b.decls = append(b.decls, decl)
}

func (b *body) stmt(format string, args ...any) {
	b.text.WriteString("  ")
	fmt.Fprintf(&b.text, format, args...)
	b.text.WriteString("\n")
}

func (b *body) assign(lhs, rhs string) {
	b.text.WriteString(gen.Assign(lhs, rhs))
}

// ifElse writes a two-branch conditional around single statements.
func (b *body) ifElse(cond, then, otherwise string) {
	b.stmt("if (%s) {", cond)
	b.stmt("  %s", then)
	b.stmt("} else {")
	b.stmt("  %s", otherwise)
	b.stmt("}")
}

// emit writes the function with the kernel calling convention.
func (b *body) emit(g *gen.Generator, name string) {
	g.Emitf(gen.SectionFunctions, "int %s(const d** arg, d** res, int* iw, d* w) {\n", name)

	for _, d := range b.decls {
		g.Emitf(gen.SectionFunctions, "  %s\n", d)
	}

	g.Emit(gen.SectionFunctions, b.text.String())
	g.Emit(gen.SectionFunctions, "  return 0;\n}\n\n")
}
