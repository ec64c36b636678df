package services

import (
	"context"

	"jsonatlas/internal/domain/models"
)

// DocumentService is the only mutation/query surface for documents. Every
// mutation performs exactly one document write and one collection-index
// read-modify-write.
type DocumentService interface {
	// CreateFromRawJSON stores a raw document. Contents must parse as JSON.
	CreateFromRawJSON(ctx context.Context, title, contents string, opts *models.CreateOptions) (*models.JSONDocument, error)

	// CreateFromURL stores a url reference document, or, when opts.Ingest is
	// set, fetches the URL immediately and stores the body as a raw document.
	CreateFromURL(ctx context.Context, rawURL, title string, opts *models.CreateOptions) (*models.JSONDocument, error)

	// CreateFromURLOrRawJSON dispatches on the shape of the input: a parseable
	// absolute URL becomes a url reference document, anything else is treated
	// as raw JSON contents.
	CreateFromURLOrRawJSON(ctx context.Context, input, title string) (*models.JSONDocument, error)

	// Get returns the document or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*models.JSONDocument, error)

	// Update retitles the document and its index entry. A missing id is a
	// silent no-op returning (nil, nil).
	Update(ctx context.Context, id, title string) (*models.JSONDocument, error)

	// Delete removes the document and filters it out of the index. Deleting a
	// missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns index entries sorted newest-first by creation time.
	List(ctx context.Context) ([]models.DocumentMetadata, error)

	// Collection returns the raw index record, lazily created when absent.
	Collection(ctx context.Context) (*models.DocumentCollection, error)
}

// IngestService drives batch operations over the document store.
type IngestService interface {
	// IngestFiles creates one document per file concurrently. The report has
	// one entry per input, in input order, and is returned only after every
	// attempt has terminally resolved.
	IngestFiles(ctx context.Context, files []models.UploadedFile) []models.ItemResult

	// BulkDelete deletes the given documents concurrently.
	BulkDelete(ctx context.Context, ids []string) error
}
