package match

import (
	"strings"
	"unicode"
)

// Fold normalizes a name for lenient lookup: CamelCase words are split,
// everything is lowercased and separators (_, -, space) are dropped, so
// "FillN", "fill-n" and "fill_n" all fold to "filln".
func Fold(s string) string {
	return strings.ToLower(strings.Join(tokenizeCamelCase(s), ""))
}

// Find returns the candidate whose folded form equals the folded name.
func Find(name string, candidates []string) (string, bool) {
	folded := Fold(name)

	for _, c := range candidates {
		if Fold(c) == folded {
			return c, true
		}
	}

	return "", false
}

// tokenizeCamelCase splits s at separators and at lower-to-upper case
// transitions. An acronym stays one token: "MMSparse" -> ["MM", "Sparse"].
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

func shouldStartNewToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	if unicode.IsUpper(r) && !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// end of an acronym: "MMSparse" splits before 'S'
	return unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// Tokens splits a name into lowercase words.
func Tokens(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}
