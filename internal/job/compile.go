package job

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"numgen/internal/config"
	"numgen/internal/diagnostic"
	"numgen/internal/gen"
	"numgen/internal/kernel"
	"numgen/internal/match"
	"numgen/sparsity"
)

// Diagnostic codes reported by Compile.
const (
	CodeInvalidOption     = "invalid_option"
	CodeMissingName       = "missing_name"
	CodeDuplicatePattern  = "duplicate_pattern"
	CodeDuplicateKernel   = "duplicate_kernel"
	CodeUnknownKind       = "unknown_kind"
	CodeInvalidPattern    = "invalid_pattern"
	CodeUnknownPattern    = "unknown_pattern"
	CodeUnknownKernel     = "unknown_kernel"
	CodeUnknownOp         = "unknown_op"
	CodeValueCount        = "value_count"
	CodeDimensionMismatch = "dimension_mismatch"
	CodeStageArity        = "stage_arity"
	CodeCycle             = "cycle"
	CodeNoKernels         = "no_kernels"
	CodeUnusedPattern     = "unused_pattern"
	CodeUnusedKernel      = "unused_kernel"
	CodeDuplicateExport   = "duplicate_export"
	CodeInvalidName       = "invalid_name"
)

// PatternKinds lists the recognized pattern kinds.
var PatternKinds = []string{"dense", "diagonal", "scalar", "triplet", "ccs"}

// KernelKinds lists the recognized kernel kinds.
var KernelKinds = []string{"linear", "projection", "reduction", "elementwise", "transpose", "chain"}

// suggestDistance bounds the edit distance of "did you mean" hints.
const suggestDistance = 3

// Plan is a validated job ready to generate.
type Plan struct {
	Options  config.Options
	Output   string
	Patterns map[string]*sparsity.Pattern
	Kernels  map[string]kernel.Kernel
	// Exports are the kernels added as top-level functions, entry point first.
	Exports []string
}

type compiler struct {
	f     *File
	diags *diagnostic.Diagnostics
	plan  *Plan

	patternNames []string
	kernelNames  []string
	usedPatterns map[string]bool
}

// Compile validates f and builds its patterns and kernels. The plan is nil
// when the diagnostics contain errors.
func Compile(f *File) (*Plan, *diagnostic.Diagnostics) {
	c := &compiler{
		f:     f,
		diags: &diagnostic.Diagnostics{},
		plan: &Plan{
			Output:   f.Output,
			Patterns: make(map[string]*sparsity.Pattern),
			Kernels:  make(map[string]kernel.Kernel),
		},
		usedPatterns: make(map[string]bool),
	}

	c.compileOptions()
	c.compilePatterns()
	c.compileKernels()
	c.compileExports()

	if c.diags.HasErrors() {
		return nil, c.diags
	}

	return c.plan, c.diags
}

func (c *compiler) compileOptions() {
	opts, err := config.FromMap(c.f.Options)
	if err != nil {
		var unknown *config.UnknownOptionError
		if errors.As(err, &unknown) {
			c.diags.AddErrorWithSuggestion(CodeInvalidOption, err.Error(), "options", unknown.Key, unknown.Suggestion)
			return
		}

		c.diags.AddError(CodeInvalidOption, err.Error(), "options", "")

		return
	}

	c.plan.Options = opts
}

func (c *compiler) compilePatterns() {
	for i := range c.f.Patterns {
		spec := &c.f.Patterns[i]
		item := "pattern " + spec.Name

		if spec.Name == "" {
			c.diags.AddError(CodeMissingName, fmt.Sprintf("pattern #%d has no name", i+1), "", "name")
			continue
		}

		if _, ok := c.plan.Patterns[spec.Name]; ok {
			c.diags.AddError(CodeDuplicatePattern, fmt.Sprintf("duplicate pattern %q", spec.Name), item, "name")
			continue
		}

		p, err := buildPattern(spec)
		if err != nil {
			if errors.Is(err, errUnknownPatternKind) {
				suggestion, _ := match.Closest(spec.Kind, PatternKinds, suggestDistance)
				c.diags.AddErrorWithSuggestion(CodeUnknownKind,
					fmt.Sprintf("unknown pattern kind %q", spec.Kind), item, "kind", suggestion)

				continue
			}

			c.diags.AddError(CodeInvalidPattern, err.Error(), item, "")

			continue
		}

		c.plan.Patterns[spec.Name] = p
		c.patternNames = append(c.patternNames, spec.Name)
	}
}

var errUnknownPatternKind = errors.New("unknown pattern kind")

func buildPattern(spec *PatternSpec) (*sparsity.Pattern, error) {
	if spec.Rows < 0 || spec.Cols < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", sparsity.ErrInvalidPattern, spec.Rows, spec.Cols)
	}

	switch spec.Kind {
	case "dense":
		return sparsity.Dense(spec.Rows, spec.Cols), nil
	case "diagonal":
		if spec.Rows != spec.Cols {
			return nil, fmt.Errorf("%w: diagonal pattern must be square, got %dx%d",
				sparsity.ErrInvalidPattern, spec.Rows, spec.Cols)
		}

		return sparsity.Diagonal(spec.Rows), nil
	case "scalar":
		return sparsity.Scalar(), nil
	case "triplet":
		return sparsity.Triplet(spec.Rows, spec.Cols, spec.Row, spec.Col)
	case "ccs":
		return sparsity.New(spec.Rows, spec.Cols, spec.Colind, spec.Row)
	default:
		return nil, errUnknownPatternKind
	}
}

func (c *compiler) compileKernels() {
	index := make(map[string]int)

	var specs []*KernelSpec

	for i := range c.f.Kernels {
		spec := &c.f.Kernels[i]

		if spec.Name == "" {
			c.diags.AddError(CodeMissingName, fmt.Sprintf("kernel #%d has no name", i+1), "", "name")
			continue
		}

		if _, ok := index[spec.Name]; ok {
			c.diags.AddError(CodeDuplicateKernel, fmt.Sprintf("duplicate kernel %q", spec.Name), "kernel "+spec.Name, "name")
			continue
		}

		if !slices.Contains(KernelKinds, spec.Kind) {
			suggestion, _ := match.Closest(spec.Kind, KernelKinds, suggestDistance)
			c.diags.AddErrorWithSuggestion(CodeUnknownKind,
				fmt.Sprintf("unknown kernel kind %q", spec.Kind), "kernel "+spec.Name, "kind", suggestion)

			continue
		}

		index[spec.Name] = len(specs)
		specs = append(specs, spec)
		c.kernelNames = append(c.kernelNames, spec.Name)
	}

	if len(c.f.Kernels) == 0 {
		c.diags.AddError(CodeNoKernels, "job defines no kernels", "", "kernels")
		return
	}

	// Stages must be built before the chains using them.
	deps := make([][]int, len(specs))

	for i, spec := range specs {
		for _, stage := range spec.Stages {
			if j, ok := index[stage]; ok {
				deps[i] = append(deps[i], j)
			} else {
				c.unknownKernel(stage, "kernel "+spec.Name, "stages")
			}
		}
	}

	order, err := topoSort(len(specs), func(i int) []int { return deps[i] })
	if err != nil {
		var cycle *CycleError
		if errors.As(err, &cycle) {
			names := lo.Map(cycle.Nodes, func(i int, _ int) string { return specs[i].Name })
			c.diags.AddError(CodeCycle, fmt.Sprintf("chain stages form a cycle among %v", names), "", "stages")

			return
		}

		c.diags.AddError(CodeCycle, err.Error(), "", "stages")

		return
	}

	for _, i := range order {
		spec := specs[i]

		k, ok := c.buildKernel(spec)
		if ok {
			c.plan.Kernels[spec.Name] = k
		}
	}

	for _, name := range c.patternNames {
		if !c.usedPatterns[name] {
			c.diags.AddWarning(CodeUnusedPattern, fmt.Sprintf("pattern %q is never used", name), "pattern "+name, "")
		}
	}
}

func (c *compiler) unknownKernel(name, item, field string) {
	suggestion, _ := match.Closest(name, c.kernelNames, suggestDistance)
	c.diags.AddErrorWithSuggestion(CodeUnknownKernel, fmt.Sprintf("unknown kernel %q", name), item, field, suggestion)
}

// pattern resolves a pattern reference, reporting a diagnostic when it is
// missing.
func (c *compiler) pattern(ref, item, field string) (*sparsity.Pattern, bool) {
	if p, ok := c.plan.Patterns[ref]; ok {
		c.usedPatterns[ref] = true
		return p, true
	}

	msg := fmt.Sprintf("unknown pattern %q", ref)
	if ref == "" {
		msg = "missing pattern reference"
	}

	suggestion, _ := match.Closest(ref, c.patternNames, suggestDistance)
	c.diags.AddErrorWithSuggestion(CodeUnknownPattern, msg, item, field, suggestion)

	return nil, false
}

func (c *compiler) buildKernel(spec *KernelSpec) (kernel.Kernel, bool) {
	item := "kernel " + spec.Name

	switch spec.Kind {
	case "linear":
		a, ok := c.pattern(spec.Pattern, item, "pattern")
		if !ok {
			return nil, false
		}

		return c.check(kernel.NewLinear(a, spec.Values))(item)
	case "projection":
		from, okFrom := c.pattern(spec.From, item, "from")
		to, okTo := c.pattern(spec.To, item, "to")

		if !okFrom || !okTo {
			return nil, false
		}

		return c.check(kernel.NewProjection(from, to))(item)
	case "reduction":
		sp, ok := c.pattern(spec.Pattern, item, "pattern")

		op, err := kernel.ParseReductionOp(spec.Op)
		if err != nil {
			suggestion, _ := match.Closest(spec.Op, kernel.ReductionOps, suggestDistance)
			c.diags.AddErrorWithSuggestion(CodeUnknownOp, err.Error(), item, "op", suggestion)

			return nil, false
		}

		if !ok {
			return nil, false
		}

		return c.check(kernel.NewReduction(op, sp))(item)
	case "elementwise":
		sp, ok := c.pattern(spec.Pattern, item, "pattern")

		op, err := kernel.ParseElementwiseOp(spec.Op)
		if err != nil {
			suggestion, _ := match.Closest(spec.Op, kernel.ElementwiseOps, suggestDistance)
			c.diags.AddErrorWithSuggestion(CodeUnknownOp, err.Error(), item, "op", suggestion)

			return nil, false
		}

		if !ok {
			return nil, false
		}

		return c.check(kernel.NewElementwise(op, sp, spec.Alpha))(item)
	case "transpose":
		sp, ok := c.pattern(spec.Pattern, item, "pattern")
		if !ok {
			return nil, false
		}

		return kernel.NewTranspose(sp), true
	case "chain":
		stages := make([]kernel.Kernel, 0, len(spec.Stages))

		for _, name := range spec.Stages {
			st, ok := c.plan.Kernels[name]
			if !ok {
				// Unknown or failed stage, already reported.
				return nil, false
			}

			stages = append(stages, st)
		}

		return c.check(kernel.NewChain(stages...))(item)
	default:
		return nil, false
	}
}

// check turns a kernel constructor result into a diagnostic on failure.
func (c *compiler) check(k kernel.Kernel, err error) func(item string) (kernel.Kernel, bool) {
	return func(item string) (kernel.Kernel, bool) {
		if err == nil {
			return k, true
		}

		code := CodeInvalidPattern

		switch {
		case errors.Is(err, kernel.ErrValueCount):
			code = CodeValueCount
		case errors.Is(err, kernel.ErrDimensionMismatch):
			code = CodeDimensionMismatch
		case errors.Is(err, kernel.ErrArity), errors.Is(err, kernel.ErrEmptyChain):
			code = CodeStageArity
		case errors.Is(err, kernel.ErrUnknownOp):
			code = CodeUnknownOp
		}

		c.diags.AddError(code, err.Error(), item, "")

		return nil, false
	}
}

func (c *compiler) compileExports() {
	exports := c.f.Export
	if len(exports) == 0 {
		c.plan.Exports = slices.Clone(c.kernelNames)
		c.checkExportNames()

		return
	}

	seen := make(map[string]bool)

	for _, name := range exports {
		if seen[name] {
			c.diags.AddError(CodeDuplicateExport, fmt.Sprintf("kernel %q exported twice", name), "export", name)
			continue
		}

		seen[name] = true

		if !slices.Contains(c.kernelNames, name) {
			c.unknownKernel(name, "export", name)
			continue
		}

		c.plan.Exports = append(c.plan.Exports, name)
	}

	c.checkExportNames()

	stages := make(map[string]bool)

	for _, spec := range c.f.Kernels {
		for _, s := range spec.Stages {
			stages[s] = true
		}
	}

	for _, name := range c.kernelNames {
		if !seen[name] && !stages[name] {
			c.diags.AddWarning(CodeUnusedKernel,
				fmt.Sprintf("kernel %q is neither exported nor used as a stage", name), "kernel "+name, "")
		}
	}
}

// checkExportNames rejects exported kernels whose name cannot be a symbol of
// the generated file. Kernels used only as stages get generated names.
func (c *compiler) checkExportNames() {
	for _, name := range c.plan.Exports {
		if err := gen.CheckName(name); err != nil {
			c.diags.AddError(CodeInvalidName, fmt.Sprintf("kernel %q cannot be exported: %v", name, err), "kernel "+name, "name")
		}
	}
}
