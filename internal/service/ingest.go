package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"jsonatlas/internal/domain/models"
	"jsonatlas/internal/domain/services"
)

// ingestService fans out batch operations over the document service. Each
// attempt is independent: one file's failure never aborts its siblings, and
// the aggregated report is emitted exactly once, after every attempt has
// terminally resolved.
type ingestService struct {
	docs   services.DocumentService
	logger *slog.Logger
}

// NewIngestService creates a new ingest service
func NewIngestService(docs services.DocumentService, logger *slog.Logger) services.IngestService {
	return &ingestService{
		docs:   docs,
		logger: logger,
	}
}

// IngestFiles creates one document per uploaded file, concurrently. The
// report has one entry per input, in input order. Attempts are never
// retried. Because each creation performs its own collection-index
// read-modify-write, concurrent items can race on the index record; the
// document records themselves always land.
func (s *ingestService) IngestFiles(ctx context.Context, files []models.UploadedFile) []models.ItemResult {
	results := make([]models.ItemResult, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file models.UploadedFile) {
			defer wg.Done()
			results[i] = s.ingestOne(ctx, file)
		}(i, file)
	}
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	s.logger.Info("batch ingestion complete",
		"total", len(files),
		"succeeded", succeeded,
		"failed", len(files)-succeeded,
	)
	return results
}

func (s *ingestService) ingestOne(ctx context.Context, file models.UploadedFile) models.ItemResult {
	result := models.ItemResult{Filename: file.Filename}

	if len(file.Content) == 0 {
		result.Error = "no JSON content"
		return result
	}

	doc, err := s.docs.CreateFromRawJSON(ctx, file.Filename, string(file.Content), nil)
	if err != nil {
		s.logger.Warn("batch item failed", "filename", file.Filename, "error", err)
		result.Error = err.Error()
		return result
	}

	result.DocID = doc.ID
	result.Success = true
	return result
}

// BulkDelete removes the given documents concurrently. All deletions are
// attempted; failures are joined into one error.
func (s *ingestService) BulkDelete(ctx context.Context, ids []string) error {
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			if err := s.docs.Delete(ctx, id); err != nil {
				errs[i] = fmt.Errorf("delete %s: %w", id, err)
			}
		}(i, id)
	}
	wg.Wait()

	return errors.Join(errs...)
}
