// Package config holds the options recognized by the C generator and loads
// them from option maps, YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"numgen/internal/match"
)

// Recognized option keys.
const (
	KeyPrefix    = "prefix"
	KeyInclude   = "include"
	KeyMex       = "mex"
	KeyCppGuards = "cppguards"
	KeyMain      = "main"
	KeyRealT     = "real_t"
)

// Keys lists the recognized option keys.
var Keys = []string{KeyPrefix, KeyInclude, KeyMex, KeyCppGuards, KeyMain, KeyRealT}

// suggestDistance bounds the edit distance of "did you mean" hints.
const suggestDistance = 3

var (
	ErrUnknownOption = errors.New("unknown option")
	ErrOptionType    = errors.New("invalid option value")
)

// Options configures one generation run.
type Options struct {
	// Prefix is a name-mangling prefix. It is stored but does not rename
	// generated symbols.
	Prefix string
	// Include is an extra header added as a quoted include.
	Include string
	// Mex enables the MATLAB gateway and host-specific marshalling/printing.
	Mex bool
	// CppGuards wraps the document in extern "C" guards.
	CppGuards bool
	// Main emits a standalone program entry point.
	Main bool
	// RealT is the C scalar type used by generated code.
	RealT string
}

// Default returns the options used when a key is absent.
func Default() Options {
	return Options{
		CppGuards: true,
		RealT:     "double",
	}
}

// UnknownOptionError reports an option key outside Keys.
type UnknownOptionError struct {
	Key string
	// Suggestion is the closest recognized key, or empty.
	Suggestion string
}

func (e *UnknownOptionError) Error() string {
	msg := fmt.Sprintf("unrecognized option %q", e.Key)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}

	return msg
}

func (e *UnknownOptionError) Unwrap() error { return ErrUnknownOption }

// OptionTypeError reports a recognized key with a value of the wrong type.
type OptionTypeError struct {
	Key  string
	Want string
	Got  any
}

func (e *OptionTypeError) Error() string {
	return fmt.Sprintf("option %q: want %s, got %T", e.Key, e.Want, e.Got)
}

func (e *OptionTypeError) Unwrap() error { return ErrOptionType }

// FromMap applies raw on top of Default. Keys are processed in sorted order
// so the reported error does not depend on map iteration.
func FromMap(raw map[string]any) (Options, error) {
	opts := Default()

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		if err := opts.set(k, raw[k]); err != nil {
			return Options{}, err
		}
	}

	return opts, nil
}

func (o *Options) set(key string, value any) error {
	switch key {
	case KeyPrefix:
		return setString(key, value, &o.Prefix)
	case KeyInclude:
		return setString(key, value, &o.Include)
	case KeyMex:
		return setBool(key, value, &o.Mex)
	case KeyCppGuards:
		return setBool(key, value, &o.CppGuards)
	case KeyMain:
		return setBool(key, value, &o.Main)
	case KeyRealT:
		if err := setString(key, value, &o.RealT); err != nil {
			return err
		}

		if strings.TrimSpace(o.RealT) == "" {
			return &OptionTypeError{Key: key, Want: "non-empty type name", Got: value}
		}

		return nil
	default:
		suggestion, _ := match.Closest(key, Keys, suggestDistance)
		return &UnknownOptionError{Key: key, Suggestion: suggestion}
	}
}

func setString(key string, value any, dst *string) error {
	s, ok := value.(string)
	if !ok {
		return &OptionTypeError{Key: key, Want: "string", Got: value}
	}

	*dst = s

	return nil
}

func setBool(key string, value any, dst *bool) error {
	b, ok := value.(bool)
	if !ok {
		return &OptionTypeError{Key: key, Want: "bool", Got: value}
	}

	*dst = b

	return nil
}

// Map renders the options back into an option map with every key set.
func (o Options) Map() map[string]any {
	return map[string]any{
		KeyPrefix:    o.Prefix,
		KeyInclude:   o.Include,
		KeyMex:       o.Mex,
		KeyCppGuards: o.CppGuards,
		KeyMain:      o.Main,
		KeyRealT:     o.RealT,
	}
}
