package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Section is one of the text buffers a document is assembled from.
type Section int

const (
	SectionIncludes Section = iota
	SectionAuxiliaries
	SectionConstants
	SectionFunctions
	SectionFinalization

	sectionCount
)

const banner = "/* Code generated by numgen. DO NOT EDIT. */\n"

// RealMacro is the macro generated code uses for the scalar type.
const RealMacro = "d"

func (g *Generator) section(s Section) *strings.Builder {
	if s < 0 || s >= sectionCount {
		panic(fmt.Sprintf("gen: invalid section %d", s))
	}

	return &g.sections[s]
}

// Emit appends text to a section.
func (g *Generator) Emit(s Section, text string) {
	g.section(s).WriteString(text)
}

// Emitf appends formatted text to a section.
func (g *Generator) Emitf(s Section, format string, args ...any) {
	fmt.Fprintf(g.section(s), format, args...)
}

// part writes one piece of the document.
type part func(g *Generator, b *strings.Builder)

// document lists the parts of a generated file in output order.
var document = []part{
	func(_ *Generator, b *strings.Builder) { b.WriteString(banner) },
	writeGuardOpen,
	writeSection(SectionIncludes),
	func(_ *Generator, b *strings.Builder) { b.WriteString("\n") },
	writeRealMacro,
	writeSection(SectionAuxiliaries),
	writeIntTables,
	writeFloatTables,
	writeTablesEnd,
	writeSection(SectionConstants),
	writeSection(SectionFunctions),
	writeMexGateway,
	writeMainEntry,
	writeSection(SectionFinalization),
	writeGuardClose,
	func(_ *Generator, b *strings.Builder) { b.WriteString("\n") },
}

// Serialize returns the complete document. It can be called repeatedly; the
// generator state is not consumed.
func (g *Generator) Serialize() string {
	var b strings.Builder

	for _, p := range document {
		p(g, &b)
	}

	return b.String()
}

func writeSection(s Section) part {
	return func(g *Generator, b *strings.Builder) {
		b.WriteString(g.sections[s].String())
	}
}

func writeGuardOpen(g *Generator, b *strings.Builder) {
	if !g.opts.CppGuards {
		return
	}

	b.WriteString("#ifdef __cplusplus\nextern \"C\" {\n#endif\n\n")
}

func writeGuardClose(g *Generator, b *strings.Builder) {
	if !g.opts.CppGuards {
		return
	}

	b.WriteString("#ifdef __cplusplus\n} /* extern \"C\" */\n#endif\n")
}

func writeRealMacro(g *Generator, b *strings.Builder) {
	fmt.Fprintf(b, "#define %s %s\n\n", RealMacro, g.opts.RealT)
}

func writeIntTables(g *Generator, b *strings.Builder) {
	for i := range g.ints.Len() {
		writeTable(b, "int", "s"+strconv.Itoa(i), lo.Map(g.ints.At(i), func(v int, _ int) string {
			return strconv.Itoa(v)
		}))
	}
}

func writeFloatTables(g *Generator, b *strings.Builder) {
	for i := range g.floats.Len() {
		writeTable(b, RealMacro, "c"+strconv.Itoa(i), lo.Map(g.floats.At(i), func(v float64, _ int) string {
			return FormatReal(v)
		}))
	}
}

func writeTablesEnd(g *Generator, b *strings.Builder) {
	if g.ints.Len()+g.floats.Len() > 0 {
		b.WriteString("\n")
	}
}

// writeTable emits a static constant array. An empty vector becomes a
// one-element zero array, since C forbids zero-length arrays.
func writeTable(b *strings.Builder, typ, name string, values []string) {
	if len(values) == 0 {
		fmt.Fprintf(b, "static const %s %s[1] = {0};\n", typ, name)
		return
	}

	fmt.Fprintf(b, "static const %s %s[] = {%s};\n", typ, name, strings.Join(values, ", "))
}

// The wrappers call mex_eval and main_eval, which the entry point's metadata
// defines, so they are left out until a function is added.
const mexGateway = `#ifdef MATLAB_MEX_FILE
void mexFunction(int resc, mxArray *resv[], int argc, const mxArray *argv[]) {
  mex_eval(resc, resv, argc, argv);
}
#endif

`

func writeMexGateway(g *Generator, b *strings.Builder) {
	if !g.opts.Mex || g.EntryPoint() == "" {
		return
	}

	b.WriteString(mexGateway)
}

const mainEntry = `int main(int argc, char* argv[]) {
  return main_eval(argc, argv);
}

`

func writeMainEntry(g *Generator, b *strings.Builder) {
	if !g.opts.Main || g.EntryPoint() == "" {
		return
	}

	b.WriteString(mainEntry)
}
