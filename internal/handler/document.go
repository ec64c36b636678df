package handler

import (
	"log/slog"
	"net/http"
	"time"

	"jsonatlas/internal/domain/models"
	"jsonatlas/internal/domain/services"
	"jsonatlas/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docs   services.DocumentService
	logger *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docs services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docs:   docs,
		logger: logger,
	}
}

// CreateDocument creates a document from raw JSON or a URL
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := &models.CreateOptions{
		TTL:      time.Duration(req.TTL) * time.Second,
		ReadOnly: req.ReadOnly,
		Ingest:   req.Ingest,
	}

	var (
		doc *models.JSONDocument
		err error
	)
	if req.URL != "" {
		doc, err = h.docs.CreateFromURL(r.Context(), req.URL, req.Title, opts)
	} else {
		title := req.Title
		if title == "" {
			title = "Untitled"
		}
		doc, err = h.docs.CreateFromRawJSON(r.Context(), title, req.Contents, opts)
	}
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// ListDocuments returns all document metadata, newest first
// GET /api/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docs.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, DocumentListResponse{
		Documents: docs,
		Total:     len(docs),
	})
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	doc, err := h.docs.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateDocument retitles a document
// PATCH /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	var req UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.docs.Update(r.Context(), id, req.Title)
	if err != nil {
		handleError(w, err)
		return
	}
	if doc == nil {
		// Update of a missing id is a store-level no-op; surface absence here.
		httputil.RespondError(w, http.StatusNotFound, "document not found")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument deletes a document; deleting a missing id still succeeds
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	if err := h.docs.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
