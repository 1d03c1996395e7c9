package kernel

import (
	"bytes"
	"fmt"
	"text/template"

	"numgen/internal/gen"
	"numgen/internal/workspace"
	"numgen/sparsity"
)

// Error identifier used by the generated host wrappers.
const errorID = "numgen:RuntimeError"

type evalData struct {
	Name    string
	ErrorID string
	NIn     int
	NOut    int
	// Array sizes, at least one since C forbids empty arrays.
	ArgLen int
	ResLen int
	IWLen  int
	WLen   int
	// Statements computed by the generator emitters.
	Inputs  []string
	Outputs []string
	Prints  []string
	// Scan reads all input nonzeros.
	ScanFormat string
	NScan      int
	Kernel     string
}

var mexEvalTemplate = template.Must(template.New("mex_eval").Parse(`#ifdef MATLAB_MEX_FILE
void mex_eval(int resc, mxArray *resv[], int argc, const mxArray *argv[]) {
  const d* arg[{{.ArgLen}}];
  d* res[{{.ResLen}}];
  int iw[{{.IWLen}}];
  d w[{{.WLen}}];
  if (argc>{{.NIn}}) mexErrMsgIdAndTxt("{{.ErrorID}}", "Evaluation of \"{{.Name}}\" failed. Too many input arguments (%d, max {{.NIn}})", argc);
  if (resc>{{.NOut}}) mexErrMsgIdAndTxt("{{.ErrorID}}", "Evaluation of \"{{.Name}}\" failed. Too many output arguments (%d, max {{.NOut}})", resc);
{{- range .Inputs}}
  {{.}}
{{- end}}
{{- range .Outputs}}
  {{.}}
{{- end}}
  if ({{.Kernel}}) mexErrMsgIdAndTxt("{{.ErrorID}}", "Evaluation of \"{{.Name}}\" failed.");
}
#endif

`))

var mainEvalTemplate = template.Must(template.New("main_eval").Parse(`int main_eval(int argc, char* argv[]) {
  const d* arg[{{.ArgLen}}];
  d* res[{{.ResLen}}];
  int iw[{{.IWLen}}];
  d w[{{.WLen}}];
  d* a = w;
  int j, flag;
  for (j=0; j<{{.NScan}}; ++j) if (scanf("{{.ScanFormat}}", a++)<=0) return 2;
{{- range .Inputs}}
  {{.}}
{{- end}}
{{- range .Outputs}}
  {{.}}
{{- end}}
  flag = {{.Kernel}};
  if (flag) return flag;
{{- range .Prints}}
  {{.}}
{{- end}}
  return 0;
}

`))

// layout assigns offsets in the wrapper's real buffer to each pattern, one
// after another, starting at start.
func layout(ps []*sparsity.Pattern, start int) (offsets []int, end int) {
	end = start
	for _, p := range ps {
		offsets = append(offsets, end)
		end += p.Nnz()
	}

	return offsets, end
}

func atLeastOne(n int) int {
	return max(n, 1)
}

// generateMexEval emits mex_eval, which marshals host matrices into the
// kernel's buffers and wraps its outputs in new host matrices.
func (s *signature) generateMexEval(g *gen.Generator, name string) error {
	inOff, inEnd := layout(s.in, 0)

	// ng_from_mex stages through a dense scratch area of the input size.
	scratch := 0
	for _, p := range s.in {
		scratch = max(scratch, p.Numel())
	}

	kernelOff := inEnd + scratch

	data := s.evalData(name, kernelOff+s.szW)

	for i, p := range s.in {
		from := g.FromMex(fmt.Sprintf("argv[%d]", i), workspace.Buffer, inOff[i], p, workspace.Ref(inEnd))
		data.Inputs = append(data.Inputs, fmt.Sprintf("arg[%d] = argc>%d ? %s : 0;", i, i, from))
	}

	for i, p := range s.out {
		to := g.ToMex(p, workspace.Offset("res", i))
		if i == 0 {
			data.Outputs = append(data.Outputs, fmt.Sprintf("resv[0] = %s;", to))
			continue
		}

		data.Outputs = append(data.Outputs,
			fmt.Sprintf("if (resc>%d) resv[%d] = %s; else res[%d] = 0;", i, i, to, i))
	}

	data.Kernel = fmt.Sprintf("%s(arg, res, iw, %s)", name, workspace.Ref(kernelOff))

	return emitTemplate(g, mexEvalTemplate, data)
}

// generateMainEval emits main_eval, which reads every input nonzero from
// stdin and prints every output nonzero.
func (s *signature) generateMainEval(g *gen.Generator, name string) error {
	g.AddInclude("stdio.h", false)

	inOff, inEnd := layout(s.in, 0)
	outOff, outEnd := layout(s.out, inEnd)

	data := s.evalData(name, outEnd+s.szW)
	data.NScan = inEnd
	data.ScanFormat = scanFormat(g.RealT())

	for i := range s.in {
		data.Inputs = append(data.Inputs, fmt.Sprintf("arg[%d] = %s;", i, workspace.Offset(workspace.Buffer, inOff[i])))
	}

	for i, p := range s.out {
		data.Outputs = append(data.Outputs, fmt.Sprintf("res[%d] = %s;", i, workspace.Offset(workspace.Buffer, outOff[i])))
		data.Prints = append(data.Prints,
			fmt.Sprintf("for (j=0; j<%d; ++j) %s", p.Nnz(), g.Printf(printFormat(g.RealT())+" ", fmt.Sprintf("res[%d][j]", i))),
			g.Printf(`\n`))
	}

	data.Kernel = fmt.Sprintf("%s(arg, res, iw, %s)", name, workspace.Ref(outEnd))

	return emitTemplate(g, mainEvalTemplate, data)
}

func (s *signature) evalData(name string, wLen int) evalData {
	return evalData{
		Name:    name,
		ErrorID: errorID,
		NIn:     len(s.in),
		NOut:    len(s.out),
		ArgLen:  atLeastOne(len(s.in)),
		ResLen:  atLeastOne(len(s.out)),
		IWLen:   atLeastOne(s.szIW),
		WLen:    atLeastOne(wLen),
	}
}

// scanFormat returns the scanf conversion for the scalar type.
func scanFormat(realT string) string {
	switch realT {
	case "float":
		return "%g"
	case "long double":
		return "%Lg"
	default:
		return "%lg"
	}
}

// printFormat returns the printf conversion for the scalar type; float is
// promoted to double in variadic calls.
func printFormat(realT string) string {
	if realT == "long double" {
		return "%Lg"
	}

	return "%g"
}

func emitTemplate(g *gen.Generator, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing %s template: %w", tmpl.Name(), err)
	}

	g.Emit(gen.SectionFunctions, buf.String())

	return nil
}
