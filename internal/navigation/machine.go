package navigation

import (
	"jsonatlas/internal/jsonpath"
)

// Mode is the path bar display mode.
type Mode int

const (
	// ModeLink renders the breadcrumb chain; any click or the edit
	// affordance switches to ModeEdit.
	ModeLink Mode = iota
	// ModeEdit exposes the free-text input buffer.
	ModeEdit
)

// Source identifies what triggered a navigation.
type Source string

const (
	SourceBreadcrumb   Source = "breadcrumb"
	SourcePathBar      Source = "pathBar"
	SourceHistory      Source = "history"
	SourceProgrammatic Source = "programmatic"
)

// Machine is the navigation state machine for one document view. It is
// owned by a single event loop: handlers run to completion one at a time,
// so the Machine is deliberately not internally locked.
type Machine struct {
	doc      any
	resolver Resolver

	mode          Mode
	selected      []Node
	highlightedID string

	buffer      string
	results     []jsonpath.Result
	resultIndex int

	history []string
	cursor  int
}

// NewMachine creates a Machine over a decoded JSON document value. A nil
// resolver gets the default document-walking resolver. The view starts at
// the root node in link mode.
func NewMachine(doc any, resolver Resolver) *Machine {
	if resolver == nil {
		resolver = NewResolver(doc, "")
	}
	m := &Machine{
		doc:      doc,
		resolver: resolver,
		cursor:   -1,
	}
	m.GoToNodeID("$", SourceProgrammatic)
	return m
}

// Mode returns the current display mode.
func (m *Machine) Mode() Mode { return m.mode }

// SelectedNodes returns the current breadcrumb chain.
func (m *Machine) SelectedNodes() []Node { return m.selected }

// HighlightedNodeID returns the pointer of the node whose content is
// currently displayed.
func (m *Machine) HighlightedNodeID() string { return m.highlightedID }

// Buffer returns the edit-mode input buffer.
func (m *Machine) Buffer() string { return m.buffer }

// Results returns the query results for the current buffer.
func (m *Machine) Results() []jsonpath.Result { return m.results }

// ResultIndex returns the selected result position.
func (m *Machine) ResultIndex() int { return m.resultIndex }

// EnterEdit switches to edit mode, initializing the buffer from the deepest
// selected node's id.
func (m *Machine) EnterEdit() {
	if m.mode == ModeEdit {
		return
	}
	m.mode = ModeEdit
	initial := ""
	if len(m.selected) > 0 {
		initial = m.selected[len(m.selected)-1].ID
	}
	m.SetBuffer(initial)
}

// CancelEdit returns to link mode without navigating.
func (m *Machine) CancelEdit() {
	m.mode = ModeLink
	m.buffer = ""
	m.results = nil
	m.resultIndex = 0
}

// SetBuffer replaces the input buffer, re-evaluating it as a query. The
// result selection resets to the first match on every text change.
func (m *Machine) SetBuffer(text string) {
	if m.mode != ModeEdit {
		return
	}
	m.buffer = text
	m.results = jsonpath.Evaluate(m.doc, text)
	m.resultIndex = 0
}

// MoveSelection shifts the result selection by delta, clamped to the result
// range. It never submits.
func (m *Machine) MoveSelection(delta int) {
	if len(m.results) == 0 {
		return
	}
	next := m.resultIndex + delta
	if next < 0 {
		next = 0
	}
	if next > len(m.results)-1 {
		next = len(m.results) - 1
	}
	m.resultIndex = next
}

// Submit confirms the buffer: the selected query result's pointer when the
// query matched, otherwise the raw buffer as a literal path. Edit mode ends
// either way; a pointer that resolves to nothing drops the navigation and
// reports false.
func (m *Machine) Submit() bool {
	pointer := m.buffer
	if len(m.results) > 0 {
		pointer = m.results[m.resultIndex].Pointer
	}

	m.CancelEdit()
	return m.GoToNodeID(pointer, SourcePathBar)
}

// GoToNodeID navigates to the node at pointer. Unresolvable pointers leave
// the state unchanged. Every successful navigation except history replay
// records a new history entry, discarding any forward entries beyond the
// current position.
func (m *Machine) GoToNodeID(pointer string, source Source) bool {
	nodes, ok := m.resolver.Resolve(pointer)
	if !ok {
		return false
	}

	m.selected = nodes
	m.highlightedID = pointer

	if source != SourceHistory {
		m.history = append(m.history[:m.cursor+1], pointer)
		m.cursor = len(m.history) - 1
	}
	return true
}

// CanGoBack reports whether a previous history entry exists.
func (m *Machine) CanGoBack() bool { return m.cursor > 0 }

// CanGoForward reports whether a forward history entry exists.
func (m *Machine) CanGoForward() bool { return m.cursor < len(m.history)-1 }

// GoBack moves the history cursor one entry back without recording.
func (m *Machine) GoBack() bool {
	if !m.CanGoBack() {
		return false
	}
	m.cursor--
	return m.GoToNodeID(m.history[m.cursor], SourceHistory)
}

// GoForward moves the history cursor one entry forward without recording.
func (m *Machine) GoForward() bool {
	if !m.CanGoForward() {
		return false
	}
	m.cursor++
	return m.GoToNodeID(m.history[m.cursor], SourceHistory)
}
