// Package render substitutes named {Token} placeholders into template bodies.
package render

import (
	"regexp"
	"sort"
	"strings"
)

// Value binds one placeholder token (written without braces) to its text.
type Value struct {
	Token string
	Value string
}

// Values is an ordered set of placeholder bindings.
type Values []Value

// Add appends a binding and returns the extended set.
func (v Values) Add(token, value string) Values {
	return append(v, Value{Token: token, Value: value})
}

// Placeholder wraps a token in braces.
func Placeholder(token string) string {
	return "{" + token + "}"
}

// Render replaces every {Token} in tmpl with its bound value in a single
// left-to-right pass. Substituted text is never rescanned, longer tokens are
// matched before shorter ones, and the first binding of a duplicated token
// wins. Tokens without a binding are left verbatim.
func Render(tmpl string, values Values) string {
	if len(values) == 0 {
		return tmpl
	}

	ordered := make(Values, len(values))
	copy(ordered, values)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Token) > len(ordered[j].Token)
	})

	pairs := make([]string, 0, len(ordered)*2)
	for _, v := range ordered {
		pairs = append(pairs, Placeholder(v.Token), v.Value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var tokenPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// Tokens lists the distinct placeholder tokens used by tmpl, in order of
// first appearance.
func Tokens(tmpl string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, m := range tokenPattern.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			tokens = append(tokens, m[1])
		}
	}
	return tokens
}

// Missing returns the tokens used by tmpl that have no binding in values.
func Missing(tmpl string, values Values) []string {
	bound := make(map[string]bool, len(values))
	for _, v := range values {
		bound[v.Token] = true
	}
	var missing []string
	for _, tok := range Tokens(tmpl) {
		if !bound[tok] {
			missing = append(missing, tok)
		}
	}
	return missing
}
