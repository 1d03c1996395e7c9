package job

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"numgen/internal/diagnostic"
	"numgen/internal/gen"
)

var ErrInvalidJob = errors.New("invalid job")

// Generate adds every exported kernel of plan to a new generator, entry point
// first.
func Generate(plan *Plan) (*gen.Generator, error) {
	g := gen.NewGenerator(plan.Options)

	for _, name := range plan.Exports {
		if err := g.AddFunction(plan.Kernels[name], name); err != nil {
			return nil, fmt.Errorf("adding %s: %w", name, err)
		}
	}

	return g, nil
}

// Result is the outcome of Run.
type Result struct {
	Plan        *Plan
	Generator   *gen.Generator
	Diagnostics *diagnostic.Diagnostics
}

// Run loads, validates and generates the job at path. A job with error
// diagnostics yields ErrInvalidJob together with a Result carrying them.
func Run(path string) (*Result, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}

	plan, diags := Compile(f)
	res := &Result{Plan: plan, Diagnostics: diags}

	if diags.HasErrors() {
		return res, fmt.Errorf("%w: %w", ErrInvalidJob, diags.Error())
	}

	res.Generator, err = Generate(plan)
	if err != nil {
		return res, err
	}

	return res, nil
}

// OutputPath picks where to write the generated file: override when set,
// then the job's output (relative to the job file), then the job file name
// with a .c extension.
func OutputPath(jobPath, output, override string) string {
	switch {
	case override != "":
		return override
	case output != "":
		if filepath.IsAbs(output) {
			return output
		}

		return filepath.Join(filepath.Dir(jobPath), output)
	default:
		return strings.TrimSuffix(jobPath, filepath.Ext(jobPath)) + ".c"
	}
}
