package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of an options or job file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads an options file. Unknown keys are rejected.
func LoadFile(path string) (Options, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Options{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read options file %s: %w", path, err)
	}

	opts, err := Parse(data, format)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}

	return opts, nil
}

// Parse decodes an options document.
func Parse(data []byte, format Format) (Options, error) {
	raw, err := DecodeMap(data, format)
	if err != nil {
		return Options{}, err
	}

	return FromMap(raw)
}

// DecodeMap decodes a document into a generic map.
func DecodeMap(data []byte, format Format) (map[string]any, error) {
	switch format {
	case FormatYAML:
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}

		if raw == nil {
			raw = map[string]any{}
		}

		return raw, nil
	case FormatTOML:
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}

		return tree.ToMap(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}
}
