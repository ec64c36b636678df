package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tidwall/gjson"

	"jsonatlas/internal/config"
	"jsonatlas/internal/domain"
	"jsonatlas/internal/domain/models"
	"jsonatlas/internal/domain/repositories"
	"jsonatlas/internal/domain/services"
)

// idAlphabet and idLength match the historical document id format: 12
// characters drawn from the base-62 alphabet, crypto-seeded. Collisions are
// treated as negligible.
const (
	idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	idLength   = 12
)

// documentService implements the DocumentService interface on top of a
// KVStore. Every mutation performs one document write and one collection
// index read-modify-write. The index write is a blind overwrite of the whole
// record: concurrent mutations can lose each other's index update (the
// document records themselves are never lost). That race is accepted, not
// detected.
type documentService struct {
	kv      repositories.KVStore
	fetcher *http.Client
	logger  *slog.Logger
}

// NewDocumentService creates a new document service. fetcher is used for
// immediate URL ingestion; nil falls back to http.DefaultClient.
func NewDocumentService(kv repositories.KVStore, fetcher *http.Client, logger *slog.Logger) services.DocumentService {
	if fetcher == nil {
		fetcher = http.DefaultClient
	}
	return &documentService{
		kv:      kv,
		fetcher: fetcher,
		logger:  logger,
	}
}

// CreateFromRawJSON validates and stores a raw document, then appends it to
// the collection index.
func (s *documentService) CreateFromRawJSON(ctx context.Context, title, contents string, opts *models.CreateOptions) (*models.JSONDocument, error) {
	if opts == nil {
		opts = &models.CreateOptions{}
	}

	if err := validation.Validate(title,
		validation.Required,
		validation.RuneLength(1, config.MaxTitleLength),
	); err != nil {
		return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
	}

	if !gjson.Valid(contents) {
		return nil, &domain.ValidationError{Message: "contents is not valid JSON"}
	}

	id, err := newDocID()
	if err != nil {
		return nil, err
	}

	doc := &models.JSONDocument{
		ID:       id,
		Type:     models.TypeRaw,
		Title:    title,
		ReadOnly: opts.ReadOnly,
		Contents: contents,
	}

	if err := s.putDocument(ctx, doc, opts); err != nil {
		return nil, err
	}

	if err := s.addToCollection(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created", "id", doc.ID, "type", doc.Type, "title", doc.Title)
	return doc, nil
}

// CreateFromURL stores a url reference document. With opts.Ingest set the
// URL is fetched immediately and the body routed through CreateFromRawJSON;
// a non-success response is terminal for that creation, never retried.
func (s *documentService) CreateFromURL(ctx context.Context, rawURL, title string, opts *models.CreateOptions) (*models.JSONDocument, error) {
	if opts == nil {
		opts = &models.CreateOptions{}
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("not an absolute URL: %q", rawURL)}
	}

	if opts.Ingest {
		body, err := s.fetch(ctx, u.String())
		if err != nil {
			return nil, err
		}
		if title == "" {
			title = u.String()
		}
		return s.CreateFromRawJSON(ctx, title, body, opts)
	}

	id, err := newDocID()
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = u.Hostname()
	}

	doc := &models.JSONDocument{
		ID:       id,
		Type:     models.TypeURL,
		Title:    title,
		ReadOnly: opts.ReadOnly,
		URL:      u.String(),
	}

	if err := s.putDocument(ctx, doc, opts); err != nil {
		return nil, err
	}

	if err := s.addToCollection(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created", "id", doc.ID, "type", doc.Type, "url", doc.URL)
	return doc, nil
}

// CreateFromURLOrRawJSON dispatches on the shape of the input.
func (s *documentService) CreateFromURLOrRawJSON(ctx context.Context, input, title string) (*models.JSONDocument, error) {
	if u, err := url.Parse(input); err == nil && u.Scheme != "" && u.Host != "" {
		return s.CreateFromURL(ctx, input, title, nil)
	}
	if title == "" {
		title = "Untitled"
	}
	return s.CreateFromRawJSON(ctx, title, input, nil)
}

func (s *documentService) Get(ctx context.Context, id string) (*models.JSONDocument, error) {
	raw, ok, err := s.kv.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}

	var doc models.JSONDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return &doc, nil
}

// Update retitles a document and the matching index entry. A missing id is a
// silent no-op.
func (s *documentService) Update(ctx context.Context, id, title string) (*models.JSONDocument, error) {
	if err := validation.Validate(title,
		validation.Required,
		validation.RuneLength(1, config.MaxTitleLength),
	); err != nil {
		return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	doc.Title = title
	if err := s.putDocument(ctx, doc, &models.CreateOptions{}); err != nil {
		return nil, err
	}

	if err := s.updateInCollection(ctx, id, title); err != nil {
		return nil, err
	}

	s.logger.Info("document updated", "id", id, "title", title)
	return doc, nil
}

// Delete removes the record and filters the id out of the index. Absent
// records are not an error.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if err := s.kv.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}

	if err := s.removeFromCollection(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}

// List returns the index entries sorted newest-first at call time; the
// stored index itself stays insertion-ordered.
func (s *documentService) List(ctx context.Context) ([]models.DocumentMetadata, error) {
	collection, err := s.Collection(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]models.DocumentMetadata, len(collection.Documents))
	copy(docs, collection.Documents)
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// Collection reads the index record, lazily yielding an empty collection
// when none is stored yet. The lazy default is not written back.
func (s *documentService) Collection(ctx context.Context) (*models.DocumentCollection, error) {
	raw, ok, err := s.kv.Get(ctx, models.CollectionIndexKey)
	if err != nil {
		return nil, fmt.Errorf("get collection index: %w", err)
	}
	if !ok {
		return models.NewDocumentCollection(), nil
	}

	var collection models.DocumentCollection
	if err := json.Unmarshal([]byte(raw), &collection); err != nil {
		return nil, fmt.Errorf("decode collection index: %w", err)
	}
	return &collection, nil
}

func (s *documentService) putDocument(ctx context.Context, doc *models.JSONDocument, opts *models.CreateOptions) error {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", doc.ID, err)
	}

	putOpts := repositories.PutOptions{TTL: opts.TTL, Metadata: opts.Metadata}
	if err := s.kv.Put(ctx, doc.ID, string(encoded), putOpts); err != nil {
		return fmt.Errorf("put document %s: %w", doc.ID, err)
	}
	return nil
}

// addToCollection appends one metadata entry. Level is the index size at
// creation time plus one; levels are not reassigned on deletion, so a later
// creation can repeat a still-live document's level. Documented behavior.
func (s *documentService) addToCollection(ctx context.Context, doc *models.JSONDocument) error {
	collection, err := s.Collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	collection.Documents = append(collection.Documents, models.DocumentMetadata{
		ID:        doc.ID,
		Title:     doc.Title,
		Type:      doc.Type,
		CreatedAt: now,
		UpdatedAt: now,
		ReadOnly:  doc.ReadOnly,
		Level:     len(collection.Documents) + 1,
	})
	collection.LastUpdated = now

	return s.putCollection(ctx, collection)
}

// updateInCollection merges a title change into the entry matching id; no-op
// when the id is absent.
func (s *documentService) updateInCollection(ctx context.Context, id, title string) error {
	collection, err := s.Collection(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range collection.Documents {
		if collection.Documents[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	now := time.Now().UTC()
	collection.Documents[idx].Title = title
	collection.Documents[idx].UpdatedAt = now
	collection.LastUpdated = now

	return s.putCollection(ctx, collection)
}

// removeFromCollection filters the id out. When the id is not in the index
// the record is left untouched so LastUpdated does not move spuriously.
func (s *documentService) removeFromCollection(ctx context.Context, id string) error {
	collection, err := s.Collection(ctx)
	if err != nil {
		return err
	}

	kept := collection.Documents[:0:0]
	for _, meta := range collection.Documents {
		if meta.ID != id {
			kept = append(kept, meta)
		}
	}
	if len(kept) == len(collection.Documents) {
		return nil
	}

	collection.Documents = kept
	collection.LastUpdated = time.Now().UTC()

	return s.putCollection(ctx, collection)
}

func (s *documentService) putCollection(ctx context.Context, collection *models.DocumentCollection) error {
	encoded, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encode collection index: %w", err)
	}
	if err := s.kv.Put(ctx, models.CollectionIndexKey, string(encoded), repositories.PutOptions{}); err != nil {
		return fmt.Errorf("put collection index: %w", err)
	}
	return nil
}

func (s *documentService) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}

	resp, err := s.fetcher.Do(req)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}
	return string(body), nil
}

func newDocID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", fmt.Errorf("generate document id: %w", err)
	}
	return id, nil
}
