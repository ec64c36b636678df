// Package jsonpath classifies free-text path input and evaluates JSONPath
// queries against an in-memory JSON value. Evaluation is delegated to the
// ojg expression engine; this package owns only the classification and
// pointer normalization around it.
package jsonpath

import (
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// Result is one JSONPath match. Path is the dot-joined raw traversal path
// including the root token; Pointer is the normalized $-rooted address used
// for navigation. Results are ephemeral and never persisted.
type Result struct {
	Path    string `json:"path"`
	Value   any    `json:"value"`
	Pointer string `json:"pointer"`
}

// operators are the substrings that mark input as a query rather than a
// literal path. This is a fast heuristic, not a grammar check; literal paths
// containing these characters will be misclassified and that tradeoff is
// accepted.
var operators = []string{"[", "]", "..", "*", "?(", "@"}

// IsExpression reports whether text looks like a JSONPath query.
func IsExpression(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "$") {
		return true
	}
	for _, op := range operators {
		if strings.Contains(trimmed, op) {
			return true
		}
	}
	return false
}

// Evaluate runs expression against doc and returns one Result per match.
// Anything that goes wrong - input that fails classification, a malformed
// expression, an evaluator panic - yields an empty slice, never an error.
func Evaluate(doc any, expression string) (results []Result) {
	results = []Result{}
	defer func() {
		if r := recover(); r != nil {
			results = []Result{}
		}
	}()

	if !IsExpression(expression) {
		return results
	}

	x, err := jp.ParseString(strings.TrimSpace(expression))
	if err != nil {
		return results
	}

	// Locate yields no locations for a root-only expression, but $ still
	// matches the whole document.
	if isRootOnly(x) {
		return []Result{{Path: "$", Value: doc, Pointer: "$"}}
	}

	for _, loc := range x.Locate(doc, 0) {
		segs := segments(loc)
		results = append(results, Result{
			Path:    strings.Join(append([]string{"$"}, segs...), "."),
			Value:   loc.First(doc),
			Pointer: PointerFromSegments(segs),
		})
	}
	return results
}

// isRootOnly reports whether the parsed expression contains nothing beyond
// the root token.
func isRootOnly(x jp.Expr) bool {
	if len(x) == 0 {
		return false
	}
	for _, frag := range x {
		if _, ok := frag.(jp.Root); !ok {
			return false
		}
	}
	return true
}

// PointerFromSegments joins path segments into the normalized pointer
// notation: every segment prefixed with a dot under a $ root. No segments
// yields the bare root.
func PointerFromSegments(segs []string) string {
	if len(segs) == 0 {
		return "$"
	}
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range segs {
		b.WriteString(".")
		b.WriteString(seg)
	}
	return b.String()
}

// segments flattens a located expression to its keys and indices, dropping
// the root token.
func segments(loc jp.Expr) []string {
	segs := make([]string, 0, len(loc))
	for _, frag := range loc {
		switch f := frag.(type) {
		case jp.Child:
			segs = append(segs, string(f))
		case jp.Nth:
			segs = append(segs, strconv.Itoa(int(f)))
		}
	}
	return segs
}
