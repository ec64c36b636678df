package handler

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"jsonatlas/internal/config"
	"jsonatlas/internal/domain/models"
)

// CreateDocumentRequest creates a document from raw JSON contents or a URL.
// Exactly one of Contents and URL must be set. TTL is in seconds, matching
// the store's expiration granularity.
type CreateDocumentRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents,omitempty"`
	URL      string `json:"url,omitempty"`
	Ingest   bool   `json:"ingest,omitempty"`
	TTL      int64  `json:"ttl,omitempty"`
	ReadOnly bool   `json:"readOnly,omitempty"`
}

func (r *CreateDocumentRequest) Validate() error {
	if (r.Contents == "") == (r.URL == "") {
		return errors.New("exactly one of contents or url is required")
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.RuneLength(0, config.MaxTitleLength)),
		validation.Field(&r.URL, is.URL),
		validation.Field(&r.TTL, validation.Min(0)),
	)
}

// UpdateDocumentRequest retitles a document.
type UpdateDocumentRequest struct {
	Title string `json:"title"`
}

func (r *UpdateDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, config.MaxTitleLength)),
	)
}

// BulkDeleteRequest names the documents to delete.
type BulkDeleteRequest struct {
	IDs []string `json:"documentIds"`
}

// DocumentListResponse is the list endpoint payload.
type DocumentListResponse struct {
	Documents []models.DocumentMetadata `json:"documents"`
	Total     int                       `json:"total"`
}

// BatchIngestResponse is the aggregated batch upload report.
type BatchIngestResponse struct {
	Results   []models.ItemResult `json:"results"`
	Total     int                 `json:"total"`
	Succeeded int                 `json:"succeeded"`
}
