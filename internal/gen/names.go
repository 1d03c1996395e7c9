package gen

import (
	"errors"
	"fmt"
	"strings"

	"numgen/internal/auxiliary"
)

var (
	ErrInvalidName   = errors.New("not a C identifier")
	ErrReservedName  = errors.New("name is reserved by the generated code")
	ErrDuplicateName = errors.New("function name already added")
)

// reservedNames are symbols of the generated document, the locals of the
// mex and main wrappers that call the entry point, and C keywords.
var reservedNames = map[string]struct{}{
	RealMacro: {}, "sq": {}, "sign": {},
	"main": {}, "main_eval": {}, "mex_eval": {}, "mexFunction": {},
	"arg": {}, "res": {}, "iw": {}, "w": {}, "a": {}, "j": {}, "flag": {},
	"argc": {}, "argv": {}, "resc": {}, "resv": {},

	"auto": {}, "break": {}, "case": {}, "char": {}, "const": {}, "continue": {},
	"default": {}, "do": {}, "double": {}, "else": {}, "enum": {}, "extern": {},
	"float": {}, "for": {}, "goto": {}, "if": {}, "inline": {}, "int": {},
	"long": {}, "register": {}, "restrict": {}, "return": {}, "short": {},
	"signed": {}, "sizeof": {}, "static": {}, "struct": {}, "switch": {},
	"typedef": {}, "union": {}, "unsigned": {}, "void": {}, "volatile": {},
	"while": {},
}

// CheckName reports whether name can be used for a function added with
// AddFunction. Besides the fixed reserved words it rejects the generated
// table and dependency names (s<N>, c<N>, f<N>) and the auxiliary prefix.
func CheckName(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	if !isIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if _, ok := reservedNames[name]; ok || isGeneratedName(name) || strings.HasPrefix(name, auxiliary.Prefix) {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}

	return nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}

	return s != ""
}

// isGeneratedName matches s0, c12, f3 and the like.
func isGeneratedName(s string) bool {
	if len(s) < 2 || !strings.ContainsRune("scf", rune(s[0])) {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
