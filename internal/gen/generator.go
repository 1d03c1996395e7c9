package gen

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"numgen/internal/auxiliary"
	"numgen/internal/config"
	"numgen/internal/registry"
)

// Function is a numerical function that can write itself into a Generator.
// Implementations must be comparable, typically pointers: a Function is
// identified by interface equality when registered as a dependency.
type Function interface {
	// GenerateBody emits the C definition of the function under name.
	GenerateBody(g *Generator, name string) error
	// GenerateMeta emits the companion metadata functions for name.
	GenerateMeta(g *Generator, name string) error
}

// Pattern is a sparsity pattern as seen by the generator. Patterns are
// identified by interface equality, so implementations should be pointers.
type Pattern interface {
	// Compress returns nrow, ncol, colind..., row....
	Compress() []int
	// Nnz returns the number of structural nonzeros.
	Nnz() int
}

var ErrEmptyName = errors.New("function name is empty")

// Generator accumulates the sections of one generated C document.
type Generator struct {
	opts config.Options

	sections [sectionCount]strings.Builder

	includes     map[string]struct{}
	aux          *auxiliary.Library
	floats       *registry.FloatPool
	ints         *registry.IntPool
	sparsities   *registry.Identity[Pattern]
	dependencies *registry.Identity[Function]

	// sparsityTable maps a sparsity index to its integer table index.
	sparsityTable []int

	// functions lists the names passed to AddFunction, in order.
	functions []string
}

// New creates a Generator from an option map. Unrecognized keys and values of
// the wrong type are rejected before any output exists.
func New(raw map[string]any) (*Generator, error) {
	opts, err := config.FromMap(raw)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}

	return NewGenerator(opts), nil
}

// NewGenerator creates a Generator with already validated options.
func NewGenerator(opts config.Options) *Generator {
	g := &Generator{
		opts:         opts,
		includes:     make(map[string]struct{}),
		floats:       registry.NewFloatPool(),
		ints:         registry.NewIntPool(),
		sparsities:   registry.NewIdentity[Pattern](),
		dependencies: registry.NewIdentity[Function](),
	}

	g.aux = auxiliary.NewLibrary(g.section(SectionAuxiliaries), func(h string) {
		g.AddInclude(h, false)
	})

	if opts.Main {
		g.AddInclude("stdio.h", false)
	}

	if opts.Mex {
		g.AddInclude("mex.h", false)
	}

	if opts.Include != "" {
		g.AddInclude(opts.Include, true)
	}

	return g
}

// Options returns the options the Generator was created with.
func (g *Generator) Options() config.Options {
	return g.opts
}

// RealT returns the C scalar type behind the "d" macro.
func (g *Generator) RealT() string {
	return g.opts.RealT
}

// AddFunction emits the body and metadata of f under name. The first added
// function becomes the entry point that the mex and main wrappers call into.
// name must pass CheckName and differ from earlier functions.
func (g *Generator) AddFunction(f Function, name string) error {
	if err := CheckName(name); err != nil {
		return err
	}

	if slices.Contains(g.functions, name) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	g.functions = append(g.functions, name)

	if err := f.GenerateBody(g, name); err != nil {
		return fmt.Errorf("generating %s: %w", name, err)
	}

	if err := f.GenerateMeta(g, name); err != nil {
		return fmt.Errorf("generating metadata of %s: %w", name, err)
	}

	return nil
}

// EntryPoint returns the name of the first function added, or "".
func (g *Generator) EntryPoint() string {
	if len(g.functions) == 0 {
		return ""
	}

	return g.functions[0]
}

// Functions returns the names of the added functions in order.
func (g *Generator) Functions() []string {
	return append([]string(nil), g.functions...)
}

// AddInclude adds a header once. Relative headers are quoted, system headers
// use angle brackets.
func (g *Generator) AddInclude(header string, relative bool) {
	if _, ok := g.includes[header]; ok {
		return
	}

	g.includes[header] = struct{}{}

	if relative {
		g.Emitf(SectionIncludes, "#include \"%s\"\n", header)
	} else {
		g.Emitf(SectionIncludes, "#include <%s>\n", header)
	}
}

// AddAuxiliary makes sure the auxiliary routine for tag is emitted.
func (g *Generator) AddAuxiliary(tag auxiliary.Tag) {
	g.aux.Ensure(tag)
}

// HasAuxiliary reports whether the routine for tag was emitted.
func (g *Generator) HasAuxiliary(tag auxiliary.Tag) bool {
	return g.aux.Has(tag)
}

// Constant returns the index of the numeric constant table equal to v,
// adding it when allowAdding is set. A missing table is reported with an
// error wrapping registry.ErrNotFound.
func (g *Generator) Constant(v []float64, allowAdding bool) (int, error) {
	return g.floats.Intern(v, allowAdding)
}

// IntConstant is Constant for integer tables.
func (g *Generator) IntConstant(v []int, allowAdding bool) (int, error) {
	return g.ints.Intern(v, allowAdding)
}

// ConstantName returns the C name ("c<index>") of the numeric table v,
// adding it if needed.
func (g *Generator) ConstantName(v []float64) string {
	idx, err := g.floats.Intern(v, true)
	if err != nil {
		panic(err) // adding is allowed, so Intern cannot fail
	}

	return "c" + strconv.Itoa(idx)
}

// AddSparsity registers p and returns the index of its integer table.
// Registering the same pattern object again returns the same index; distinct
// objects with equal structure share one table.
func (g *Generator) AddSparsity(p Pattern) int {
	idx, _, _ := g.sparsities.Register(p, func(int) error {
		table, err := g.ints.Intern(p.Compress(), true)
		if err != nil {
			return err
		}

		g.sparsityTable = append(g.sparsityTable, table)

		return nil
	})

	return g.sparsityTable[idx]
}

// Sparsity returns the table index of a previously registered pattern. It
// panics for a pattern that was never added.
func (g *Generator) Sparsity(p Pattern) int {
	return g.sparsityTable[g.sparsities.MustLookup(p)]
}

// SparsityName returns the C name ("s<index>") of the table of p, adding the
// pattern if needed.
func (g *Generator) SparsityName(p Pattern) string {
	return "s" + strconv.Itoa(g.AddSparsity(p))
}

// AddDependency registers f and emits its body under a generated name the
// first time it is seen. The registration happens before the body is
// generated, so a dependency that reaches itself again does not recurse.
func (g *Generator) AddDependency(f Function) (int, error) {
	idx, _, err := g.dependencies.Register(f, func(i int) error {
		name := dependencyName(i)
		if err := f.GenerateBody(g, name); err != nil {
			return fmt.Errorf("generating dependency %s: %w", name, err)
		}

		return nil
	})

	return idx, err
}

// Dependency returns the index of a registered dependency. It panics for a
// function that was never added.
func (g *Generator) Dependency(f Function) int {
	return g.dependencies.MustLookup(f)
}

// DependencyName returns the C name ("f<index>") of a registered dependency.
func (g *Generator) DependencyName(f Function) string {
	return dependencyName(g.Dependency(f))
}

func dependencyName(i int) string {
	return "f" + strconv.Itoa(i)
}
