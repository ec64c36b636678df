// Package navigation owns the breadcrumb chain, path-bar editing, and
// back/forward history for a single document view. It sits on top of the
// jsonpath package: free-text input is classified there and resolved here
// into a chain of column-view nodes.
package navigation

import (
	"strconv"
	"strings"
)

// Node is one navigable unit. ID is the normalized $-rooted pointer of the
// node; Icon is a symbolic name for the value kind, presentation is someone
// else's problem.
type Node struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Resolver locates the node chain for a pointer. The bool reports whether
// the pointer names an existing location; navigation requests for unknown
// pointers are dropped.
type Resolver interface {
	Resolve(pointer string) ([]Node, bool)
}

// documentResolver walks a decoded JSON value by pointer segments.
type documentResolver struct {
	doc       any
	rootTitle string
}

// NewResolver returns a Resolver over a decoded JSON document value.
// rootTitle labels the root node; empty defaults to "root".
func NewResolver(doc any, rootTitle string) Resolver {
	if rootTitle == "" {
		rootTitle = "root"
	}
	return &documentResolver{doc: doc, rootTitle: rootTitle}
}

func (r *documentResolver) Resolve(pointer string) ([]Node, bool) {
	segs, ok := ParsePointer(pointer)
	if !ok {
		return nil, false
	}

	nodes := []Node{{ID: "$", Title: r.rootTitle, Icon: iconFor(r.doc)}}
	current := r.doc
	id := "$"

	for _, seg := range segs {
		next, ok := step(current, seg)
		if !ok {
			return nil, false
		}
		id += "." + seg
		nodes = append(nodes, Node{ID: id, Title: seg, Icon: iconFor(next)})
		current = next
	}
	return nodes, true
}

// ParsePointer splits a normalized pointer into its segments. The bool is
// false when the input is not $-rooted.
func ParsePointer(pointer string) ([]string, bool) {
	if pointer == "$" {
		return nil, true
	}
	if !strings.HasPrefix(pointer, "$.") {
		return nil, false
	}
	return strings.Split(pointer[2:], "."), true
}

func step(value any, seg string) (any, bool) {
	switch v := value.(type) {
	case map[string]any:
		next, ok := v[seg]
		return next, ok
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(v) {
			return nil, false
		}
		return v[i], true
	default:
		return nil, false
	}
}

func iconFor(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "number"
	}
}
