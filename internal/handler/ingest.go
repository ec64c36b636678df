package handler

import (
	"io"
	"log/slog"
	"net/http"

	"jsonatlas/internal/config"
	"jsonatlas/internal/domain/models"
	"jsonatlas/internal/domain/services"
	"jsonatlas/internal/httputil"
)

// IngestHandler handles batch upload and bulk delete requests
type IngestHandler struct {
	ingest services.IngestService
	logger *slog.Logger
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingest services.IngestService, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{
		ingest: ingest,
		logger: logger,
	}
}

// BatchCreate ingests every file of a multipart upload as its own document.
// The response always carries one result per file; a bad file fails its own
// entry without failing the batch.
// POST /api/documents/batch
func (h *IngestHandler) BatchCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.MaxRequestBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "no files uploaded")
		return
	}
	if len(headers) > config.MaxBatchFiles {
		httputil.RespondError(w, http.StatusBadRequest, "too many files in one batch")
		return
	}

	files := make([]models.UploadedFile, 0, len(headers))
	for _, header := range headers {
		file := models.UploadedFile{Filename: header.Filename}

		f, err := header.Open()
		if err == nil {
			file.Content, err = io.ReadAll(io.LimitReader(f, config.MaxUploadBytes+1))
			f.Close()
		}
		if err != nil {
			// An unreadable part still gets a slot in the report; the
			// coordinator turns the empty payload into a per-item failure.
			h.logger.Warn("failed to read upload", "filename", header.Filename, "error", err)
			file.Content = nil
		}
		if int64(len(file.Content)) > config.MaxUploadBytes {
			file.Content = nil
		}

		files = append(files, file)
	}

	results := h.ingest.IngestFiles(r.Context(), files)

	succeeded := 0
	for _, res := range results {
		if res.Success {
			succeeded++
		}
	}

	httputil.RespondJSON(w, http.StatusOK, BatchIngestResponse{
		Results:   results,
		Total:     len(results),
		Succeeded: succeeded,
	})
}

// BulkDelete deletes the selected documents
// POST /api/documents/bulk-delete
func (h *IngestHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "no documents selected")
		return
	}

	if err := h.ingest.BulkDelete(r.Context(), req.IDs); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
