package job

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"numgen/internal/config"
)

// File is a generation job: options, named sparsity patterns, named kernels
// built on them, and the kernels to export as top-level functions.
type File struct {
	Version string `yaml:"version" toml:"version"`
	// Output is the default path of the generated C file.
	Output string `yaml:"output" toml:"output"`
	// Options is the option map handed to the generator.
	Options  map[string]any `yaml:"options" toml:"-"`
	Patterns []PatternSpec  `yaml:"patterns" toml:"patterns"`
	Kernels  []KernelSpec   `yaml:"kernels" toml:"kernels"`
	// Export lists the kernels added as top-level functions, entry point
	// first. Empty means every kernel in file order.
	Export []string `yaml:"export" toml:"export"`
}

// PatternSpec describes one sparsity pattern.
type PatternSpec struct {
	Name string `yaml:"name" toml:"name"`
	// Kind is one of PatternKinds.
	Kind string `yaml:"kind" toml:"kind"`
	Rows int    `yaml:"rows" toml:"rows"`
	Cols int    `yaml:"cols" toml:"cols"`
	// Row and Col are triplet coordinates; Row is also the row index of a
	// compressed column pattern.
	Row []int `yaml:"row" toml:"row"`
	Col []int `yaml:"col" toml:"col"`
	// Colind holds the column offsets of a compressed column pattern.
	Colind []int `yaml:"colind" toml:"colind"`
}

// KernelSpec describes one kernel. Which fields apply depends on Kind.
type KernelSpec struct {
	Name string `yaml:"name" toml:"name"`
	// Kind is one of KernelKinds.
	Kind    string    `yaml:"kind" toml:"kind"`
	Pattern string    `yaml:"pattern" toml:"pattern"`
	From    string    `yaml:"from" toml:"from"`
	To      string    `yaml:"to" toml:"to"`
	Op      string    `yaml:"op" toml:"op"`
	Alpha   float64   `yaml:"alpha" toml:"alpha"`
	Values  []float64 `yaml:"values" toml:"values"`
	Stages  []string  `yaml:"stages" toml:"stages"`
}

// Load reads a job file, picking YAML or TOML from the extension.
func Load(path string) (*File, error) {
	format, err := config.FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse decodes a job document.
func Parse(data []byte, format config.Format) (*File, error) {
	var f File

	switch format {
	case config.FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse job YAML: %w", err)
		}
	case config.FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse job TOML: %w", err)
		}

		raw, err := config.DecodeMap(data, format)
		if err != nil {
			return nil, err
		}

		if opts, ok := raw["options"].(map[string]any); ok {
			f.Options = opts
		}
	default:
		return nil, fmt.Errorf("%w: %d", config.ErrUnsupportedFormat, format)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Options == nil {
		f.Options = map[string]any{}
	}

	for i := range f.Patterns {
		p := &f.Patterns[i]
		if p.Kind == "diagonal" && p.Cols == 0 {
			p.Cols = p.Rows
		}
	}
}
