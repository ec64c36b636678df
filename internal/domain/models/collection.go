package models

import "time"

// CollectionIndexKey is the reserved key the collection index record lives
// under. Generated document ids are 12-char base-62 strings so they can
// never collide with it.
const CollectionIndexKey = "__DOCUMENTS_COLLECTION__"

// DocumentMetadata is one entry of the collection index.
type DocumentMetadata struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Type      DocumentType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	ReadOnly  bool         `json:"readOnly"`
	Level     int          `json:"level"`
}

// DocumentCollection is the single secondary index enumerating metadata for
// every stored document. Documents is insertion-ordered; callers that want a
// newest-first view sort at read time.
type DocumentCollection struct {
	Version     int                `json:"version"`
	Documents   []DocumentMetadata `json:"documents"`
	LastUpdated time.Time          `json:"lastUpdated"`
}

// NewDocumentCollection returns the lazily-created empty index.
func NewDocumentCollection() *DocumentCollection {
	return &DocumentCollection{
		Version:     1,
		Documents:   []DocumentMetadata{},
		LastUpdated: time.Now().UTC(),
	}
}
