package kernel

import (
	"text/template"

	"github.com/samber/lo"

	"numgen/internal/gen"
	"numgen/sparsity"
)

// Kernel is a gen.Function with a fixed signature.
type Kernel interface {
	gen.Function

	// Inputs returns the input sparsity patterns.
	Inputs() []*sparsity.Pattern
	// Outputs returns the output sparsity patterns.
	Outputs() []*sparsity.Pattern
	// Work returns the integer and real scratch sizes the body needs.
	Work() (iw, w int)
}

// signature carries the inputs, outputs and scratch sizes of a kernel and
// emits its metadata functions.
type signature struct {
	in   []*sparsity.Pattern
	out  []*sparsity.Pattern
	szIW int
	szW  int
}

func (s *signature) Inputs() []*sparsity.Pattern { return append([]*sparsity.Pattern(nil), s.in...) }

func (s *signature) Outputs() []*sparsity.Pattern { return append([]*sparsity.Pattern(nil), s.out...) }

func (s *signature) Work() (iw, w int) { return s.szIW, s.szW }

type metaData struct {
	Name     string
	NIn      int
	NOut     int
	Sparsity []sparsityData
	SzIW     int
	SzW      int
}

type sparsityData struct {
	Dir    string
	Tables []string
}

var metaTemplate = template.Must(template.New("meta").Parse(`int {{.Name}}_n_in(void) { return {{.NIn}}; }

int {{.Name}}_n_out(void) { return {{.NOut}}; }
{{range .Sparsity}}
int {{$.Name}}_sparsity_{{.Dir}}(int i, int* nrow, int* ncol, const int** colind, const int** row) {
  const int* s;
  switch (i) {
{{- range $i, $t := .Tables}}
    case {{$i}}: s = {{$t}}; break;
{{- end}}
    default: return 1;
  }
  if (nrow) *nrow = s[0];
  if (ncol) *ncol = s[1];
  if (colind) *colind = s+2;
  if (row) *row = s+3+s[1];
  return 0;
}
{{end}}
int {{.Name}}_work(int* sz_iw, int* sz_w) {
  if (sz_iw) *sz_iw = {{.SzIW}};
  if (sz_w) *sz_w = {{.SzW}};
  return 0;
}

`))

// GenerateMeta emits the metadata functions for name and, for the entry
// function, the host and standalone wrappers.
func (s *signature) GenerateMeta(g *gen.Generator, name string) error {
	data := metaData{
		Name: name,
		NIn:  len(s.in),
		NOut: len(s.out),
		Sparsity: []sparsityData{
			{Dir: "in", Tables: tableNames(g, s.in)},
			{Dir: "out", Tables: tableNames(g, s.out)},
		},
		SzIW: s.szIW,
		SzW:  s.szW,
	}

	if err := emitTemplate(g, metaTemplate, data); err != nil {
		return err
	}

	if name != g.EntryPoint() {
		return nil
	}

	opts := g.Options()

	if opts.Mex {
		if err := s.generateMexEval(g, name); err != nil {
			return err
		}
	}

	if opts.Main {
		if err := s.generateMainEval(g, name); err != nil {
			return err
		}
	}

	return nil
}

func tableNames(g *gen.Generator, ps []*sparsity.Pattern) []string {
	return lo.Map(ps, func(p *sparsity.Pattern, _ int) string { return g.SparsityName(p) })
}
