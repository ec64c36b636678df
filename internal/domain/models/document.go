package models

import "time"

// DocumentType discriminates the two document variants.
type DocumentType string

const (
	TypeRaw DocumentType = "raw"
	TypeURL DocumentType = "url"
)

// JSONDocument is the stored document record. It is a tagged union: Type
// selects which of Contents (raw) or URL (url) is meaningful. Contents of a
// raw document is checked to be valid JSON once, at creation, and never
// re-checked on read.
type JSONDocument struct {
	ID       string       `json:"id"`
	Type     DocumentType `json:"type"`
	Title    string       `json:"title"`
	ReadOnly bool         `json:"readOnly"`
	Contents string       `json:"contents,omitempty"`
	URL      string       `json:"url,omitempty"`
}

// CreateOptions carries optional per-creation settings. TTL and Metadata are
// passed through to the key-value store untouched.
type CreateOptions struct {
	TTL      time.Duration
	ReadOnly bool
	Ingest   bool
	Metadata map[string]any
}
