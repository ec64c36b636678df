package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestDocumentCollection_JSONRoundTrip(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC)
	t2 := time.Date(2024, 3, 2, 11, 30, 0, 0, time.UTC)

	original := DocumentCollection{
		Version: 1,
		Documents: []DocumentMetadata{
			{ID: "aB3xY9kQ2mNp", Title: "first", Type: TypeRaw, CreatedAt: t1, UpdatedAt: t1, Level: 1},
			{ID: "Zz1Aa2Bb3Cc4", Title: "second", Type: TypeURL, CreatedAt: t2, UpdatedAt: t2, ReadOnly: true, Level: 2},
		},
		LastUpdated: t2,
	}

	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded DocumentCollection
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip changed the collection:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestJSONDocument_TaggedUnionRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		doc  JSONDocument
	}{
		{
			name: "raw document",
			doc:  JSONDocument{ID: "aB3xY9kQ2mNp", Type: TypeRaw, Title: "t", Contents: `{"a":1}`},
		},
		{
			name: "url document",
			doc:  JSONDocument{ID: "Zz1Aa2Bb3Cc4", Type: TypeURL, Title: "t", ReadOnly: true, URL: "https://example.com/x.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := json.Marshal(tt.doc)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			var decoded JSONDocument
			if err := json.Unmarshal(encoded, &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if decoded != tt.doc {
				t.Errorf("round trip changed the document: got %+v want %+v", decoded, tt.doc)
			}
		})
	}
}

func TestNewDocumentCollection(t *testing.T) {
	c := NewDocumentCollection()
	if c.Version != 1 {
		t.Errorf("Version = %d, want 1", c.Version)
	}
	if c.Documents == nil || len(c.Documents) != 0 {
		t.Errorf("Documents = %v, want empty non-nil slice", c.Documents)
	}
	if c.LastUpdated.IsZero() {
		t.Error("LastUpdated is zero")
	}
}
