package navigation

import (
	"encoding/json"
	"testing"
)

func fixture(t *testing.T) any {
	t.Helper()
	var doc any
	err := json.Unmarshal([]byte(`{
		"users": [
			{"name": "Ann", "admin": true},
			{"name": "Bob", "admin": false}
		],
		"count": 2
	}`), &doc)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(fixture(t), "users.json")

	tests := []struct {
		name    string
		pointer string
		wantOK  bool
		wantLen int
	}{
		{name: "root", pointer: "$", wantOK: true, wantLen: 1},
		{name: "object key", pointer: "$.users", wantOK: true, wantLen: 2},
		{name: "array index", pointer: "$.users.1", wantOK: true, wantLen: 3},
		{name: "nested leaf", pointer: "$.users.0.name", wantOK: true, wantLen: 4},
		{name: "missing key", pointer: "$.missing", wantOK: false},
		{name: "index out of range", pointer: "$.users.7", wantOK: false},
		{name: "index into scalar", pointer: "$.count.0", wantOK: false},
		{name: "not dollar rooted", pointer: "users.0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, ok := resolver.Resolve(tt.pointer)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.pointer, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if len(nodes) != tt.wantLen {
				t.Fatalf("got %d nodes, want %d", len(nodes), tt.wantLen)
			}
			if nodes[len(nodes)-1].ID != tt.pointer {
				t.Errorf("deepest node id = %q, want %q", nodes[len(nodes)-1].ID, tt.pointer)
			}
		})
	}
}

func TestResolver_NodeShape(t *testing.T) {
	resolver := NewResolver(fixture(t), "users.json")

	nodes, ok := resolver.Resolve("$.users.0.name")
	if !ok {
		t.Fatal("Resolve failed")
	}

	root := nodes[0]
	if root.Title != "users.json" || root.Icon != "object" {
		t.Errorf("root node = %+v", root)
	}
	if nodes[1].Icon != "array" {
		t.Errorf("users icon = %q, want array", nodes[1].Icon)
	}
	if nodes[2].Icon != "object" {
		t.Errorf("users.0 icon = %q, want object", nodes[2].Icon)
	}
	leaf := nodes[3]
	if leaf.Title != "name" || leaf.Icon != "string" {
		t.Errorf("leaf node = %+v", leaf)
	}
}

func TestMachine_InitialState(t *testing.T) {
	m := NewMachine(fixture(t), nil)

	if m.Mode() != ModeLink {
		t.Error("machine did not start in link mode")
	}
	if m.HighlightedNodeID() != "$" {
		t.Errorf("highlighted = %q, want $", m.HighlightedNodeID())
	}
	if m.CanGoBack() || m.CanGoForward() {
		t.Error("fresh machine reported history entries")
	}
}

func TestMachine_EditBufferInitializedFromSelection(t *testing.T) {
	m := NewMachine(fixture(t), nil)

	if !m.GoToNodeID("$.users.0", SourceProgrammatic) {
		t.Fatal("navigation failed")
	}

	m.EnterEdit()
	if m.Mode() != ModeEdit {
		t.Fatal("EnterEdit did not switch mode")
	}
	if m.Buffer() != "$.users.0" {
		t.Errorf("buffer = %q, want deepest selected node id", m.Buffer())
	}
}

func TestMachine_QueryResultsAndSelection(t *testing.T) {
	m := NewMachine(fixture(t), nil)
	m.EnterEdit()

	m.SetBuffer("$.users[*].name")
	if len(m.Results()) != 2 {
		t.Fatalf("got %d results, want 2", len(m.Results()))
	}
	if m.ResultIndex() != 0 {
		t.Error("selection did not start at 0")
	}

	m.MoveSelection(1)
	if m.ResultIndex() != 1 {
		t.Errorf("index after down = %d, want 1", m.ResultIndex())
	}

	// Clamped at both ends.
	m.MoveSelection(1)
	if m.ResultIndex() != 1 {
		t.Errorf("index clamped high = %d, want 1", m.ResultIndex())
	}
	m.MoveSelection(-1)
	m.MoveSelection(-1)
	if m.ResultIndex() != 0 {
		t.Errorf("index clamped low = %d, want 0", m.ResultIndex())
	}

	// Any text change resets the selection.
	m.MoveSelection(1)
	m.SetBuffer("$.users[*]")
	if m.ResultIndex() != 0 {
		t.Error("selection did not reset on text change")
	}
}

func TestMachine_SubmitQueryUsesSelectedResult(t *testing.T) {
	m := NewMachine(fixture(t), nil)
	m.EnterEdit()

	m.SetBuffer("$.users[*].name")
	m.MoveSelection(1)

	if !m.Submit() {
		t.Fatal("Submit failed")
	}
	if m.Mode() != ModeLink {
		t.Error("Submit did not return to link mode")
	}
	if m.HighlightedNodeID() != "$.users.1.name" {
		t.Errorf("highlighted = %q, want $.users.1.name", m.HighlightedNodeID())
	}
}

func TestMachine_SubmitLiteralPath(t *testing.T) {
	m := NewMachine(fixture(t), nil)
	m.EnterEdit()

	m.SetBuffer("$.count")
	// "$.count" classifies as a query (dollar prefix) and matches itself.
	if !m.Submit() {
		t.Fatal("Submit failed")
	}
	if m.HighlightedNodeID() != "$.count" {
		t.Errorf("highlighted = %q, want $.count", m.HighlightedNodeID())
	}
}

func TestMachine_SubmitUnresolvableIsDropped(t *testing.T) {
	m := NewMachine(fixture(t), nil)
	m.EnterEdit()

	m.SetBuffer("$.nosuch.path")
	if m.Submit() {
		t.Fatal("Submit reported success for a dead pointer")
	}
	if m.Mode() != ModeLink {
		t.Error("edit mode should end even when navigation is dropped")
	}
	if m.HighlightedNodeID() != "$" {
		t.Errorf("highlighted = %q, state should be unchanged", m.HighlightedNodeID())
	}
}

func TestMachine_HistoryBackForward(t *testing.T) {
	m := NewMachine(fixture(t), nil)

	m.GoToNodeID("$.users", SourceBreadcrumb)
	m.GoToNodeID("$.users.0", SourceBreadcrumb)

	if !m.CanGoBack() || m.CanGoForward() {
		t.Fatal("unexpected history flags after two navigations")
	}

	if !m.GoBack() {
		t.Fatal("GoBack failed")
	}
	if m.HighlightedNodeID() != "$.users" {
		t.Errorf("after back: %q, want $.users", m.HighlightedNodeID())
	}
	if !m.CanGoForward() {
		t.Error("CanGoForward false after going back")
	}

	if !m.GoForward() {
		t.Fatal("GoForward failed")
	}
	if m.HighlightedNodeID() != "$.users.0" {
		t.Errorf("after forward: %q, want $.users.0", m.HighlightedNodeID())
	}

	// History replay does not create new entries.
	if m.CanGoForward() {
		t.Error("replaying history grew the forward stack")
	}
}

func TestMachine_HistoryTruncationOnNewNavigation(t *testing.T) {
	m := NewMachine(fixture(t), nil)

	m.GoToNodeID("$.users", SourceBreadcrumb)
	m.GoToNodeID("$.users.0", SourceBreadcrumb)
	m.GoBack() // at $.users, forward entry $.users.0 pending

	m.GoToNodeID("$.count", SourceBreadcrumb)

	if m.CanGoForward() {
		t.Fatal("forward entries must be discarded on new navigation after back")
	}

	if !m.GoBack() {
		t.Fatal("GoBack failed")
	}
	if m.HighlightedNodeID() != "$.users" {
		t.Errorf("after back: %q, want $.users", m.HighlightedNodeID())
	}
}

func TestMachine_CancelEdit(t *testing.T) {
	m := NewMachine(fixture(t), nil)
	m.EnterEdit()
	m.SetBuffer("$.users")

	m.CancelEdit()
	if m.Mode() != ModeLink {
		t.Error("CancelEdit did not return to link mode")
	}
	if m.Buffer() != "" || len(m.Results()) != 0 {
		t.Error("CancelEdit did not clear the buffer state")
	}
	if m.HighlightedNodeID() != "$" {
		t.Error("CancelEdit navigated")
	}
}
