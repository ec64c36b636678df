package jsonpath

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestIsExpression(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "dollar root", input: "$.users[0].name", want: true},
		{name: "bare dollar", input: "$", want: true},
		{name: "dollar with whitespace", input: "  $.users  ", want: true},
		{name: "literal dotted path", input: "root.child", want: false},
		{name: "bracket heuristic", input: "a[b]", want: true},
		{name: "closing bracket only", input: "a]b", want: true},
		{name: "recursive descent", input: "store..price", want: true},
		{name: "wildcard", input: "users.*.name", want: true},
		{name: "filter expression", input: "users?(@.age > 2)", want: true},
		{name: "at sign", input: "@.name", want: true},
		{name: "empty string", input: "", want: false},
		{name: "whitespace only", input: "   ", want: false},
		{name: "plain word", input: "users", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExpression(tt.input); got != tt.want {
				t.Errorf("IsExpression(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func mustParse(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return v
}

func TestEvaluate_SingleMatch(t *testing.T) {
	doc := mustParse(t, `{"users":[{"name":"Ann"}]}`)

	results := Evaluate(doc, "$.users[0].name")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Value != "Ann" {
		t.Errorf("Value = %v, want Ann", results[0].Value)
	}
	if results[0].Pointer != "$.users.0.name" {
		t.Errorf("Pointer = %q, want $.users.0.name", results[0].Pointer)
	}
	if results[0].Path != "$.users.0.name" {
		t.Errorf("Path = %q, want $.users.0.name", results[0].Path)
	}
}

func TestEvaluate_Wildcard(t *testing.T) {
	doc := mustParse(t, `{"users":[{"name":"Ann"},{"name":"Bob"},{"name":"Cy"}]}`)

	results := Evaluate(doc, "$.users[*].name")
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	wantPointers := []string{"$.users.0.name", "$.users.1.name", "$.users.2.name"}
	wantValues := []string{"Ann", "Bob", "Cy"}
	for i, res := range results {
		if res.Pointer != wantPointers[i] {
			t.Errorf("result %d: Pointer = %q, want %q", i, res.Pointer, wantPointers[i])
		}
		if res.Value != wantValues[i] {
			t.Errorf("result %d: Value = %v, want %q", i, res.Value, wantValues[i])
		}
	}
}

func TestEvaluate_Root(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)

	for _, expr := range []string{"$", "  $  "} {
		results := Evaluate(doc, expr)
		if len(results) != 1 {
			t.Fatalf("Evaluate(%q): got %d results, want 1", expr, len(results))
		}
		if results[0].Pointer != "$" {
			t.Errorf("Evaluate(%q): Pointer = %q, want $", expr, results[0].Pointer)
		}
		if results[0].Path != "$" {
			t.Errorf("Evaluate(%q): Path = %q, want $", expr, results[0].Path)
		}
		if !reflect.DeepEqual(results[0].Value, doc) {
			t.Errorf("Evaluate(%q): Value = %v, want whole document", expr, results[0].Value)
		}
	}
}

func TestEvaluate_NeverErrors(t *testing.T) {
	doc := mustParse(t, `{"users":[{"name":"Ann"}]}`)

	tests := []struct {
		name  string
		input string
	}{
		{name: "not a query", input: "not a query"},
		{name: "literal path", input: "root.child"},
		{name: "malformed expression", input: "$.users["},
		{name: "unterminated filter", input: "$[?(@.x"},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Evaluate(doc, tt.input)
			if results == nil {
				t.Fatal("Evaluate returned nil, want empty slice")
			}
			if len(results) != 0 {
				t.Errorf("got %d results, want 0", len(results))
			}
		})
	}
}

func TestEvaluate_NoMatch(t *testing.T) {
	doc := mustParse(t, `{"users":[]}`)

	if results := Evaluate(doc, "$.missing.key"); len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestPointerFromSegments(t *testing.T) {
	tests := []struct {
		name string
		segs []string
		want string
	}{
		{name: "empty", segs: nil, want: "$"},
		{name: "single", segs: []string{"users"}, want: "$.users"},
		{name: "mixed", segs: []string{"users", "0", "name"}, want: "$.users.0.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointerFromSegments(tt.segs); got != tt.want {
				t.Errorf("PointerFromSegments(%v) = %q, want %q", tt.segs, got, tt.want)
			}
		})
	}
}
