package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"geofilemaker/internal/codec"
	"geofilemaker/internal/domain"
	"geofilemaker/internal/editor"
	"geofilemaker/internal/repository"
	"geofilemaker/internal/service"
)

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ClickResponse reports what a click did along with the redrawn state
type ClickResponse struct {
	Outcome string      `json:"outcome"`
	State   editor.View `json:"state"`
}

// EditorHandler handles editor API requests
type EditorHandler struct {
	svc    *service.EditorService
	logger *zap.Logger
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(svc *service.EditorService, logger *zap.Logger) *EditorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorHandler{svc: svc, logger: logger}
}

// Register adds the editor routes to mux
func (h *EditorHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/state", h.GetState)
	mux.HandleFunc("PUT /api/tiers/{tier}", h.SetTierText)
	mux.HandleFunc("POST /api/click", h.Click)
	mux.HandleFunc("POST /api/reset", h.Reset)

	mux.HandleFunc("GET /api/document", h.GetDocument)
	mux.HandleFunc("GET /api/export/{format}", h.Export)

	mux.HandleFunc("POST /api/generate", h.Generate)
	mux.HandleFunc("GET /api/generations", h.ListGenerations)
	mux.HandleFunc("GET /api/generations/{id}", h.GetGeneration)
	mux.HandleFunc("GET /api/workdir", h.GetWorkDir)
}

// GetState returns everything needed to draw the editor
func (h *EditorHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.State(), http.StatusOK)
}

// SetTierText replaces the text of the tier named in the path
func (h *EditorHandler) SetTierText(w http.ResponseWriter, r *http.Request) {
	tier, err := domain.ParseTier(r.PathValue("tier"))
	if err != nil {
		h.writeError(w, "Invalid tier", err.Error(), http.StatusBadRequest)
		return
	}

	var req TierTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateRequest(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.svc.SetTierText(tier, req.Text)
	if err != nil {
		h.writeError(w, "Failed to set tier text", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, view, http.StatusOK)
}

// Click feeds one node click into the selection protocol.
// Rejected pairs are not errors: the outcome and status message say why.
func (h *EditorHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateRequest(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	tier, err := domain.ParseTier(req.Tier)
	if err != nil {
		h.writeError(w, "Invalid tier", err.Error(), http.StatusBadRequest)
		return
	}

	out, view, err := h.svc.Click(tier, domain.NodeID(req.ID))
	if err != nil {
		if errors.Is(err, editor.ErrNodeNotRendered) {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("click failed", zap.String("tier", req.Tier), zap.String("id", req.ID), zap.Error(err))
		h.writeError(w, "Failed to handle click", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, ClickResponse{Outcome: out.Kind.String(), State: view}, http.StatusOK)
}

// Reset starts a new session
func (h *EditorHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Reset(), http.StatusOK)
}

// GetDocument returns the current document
func (h *EditorHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Document(), http.StatusOK)
}

// Export returns the document as a download in the format named in the path
func (h *EditorHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	c, err := codec.ForFormat(format)
	if err != nil {
		h.writeError(w, "Unsupported format", err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.Export(format, &buf); err != nil {
		h.logger.Error("failed to export document", zap.String("format", format), zap.Error(err))
		h.writeError(w, "Failed to export document", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", c.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename=document."+c.Format())
	w.Write(buf.Bytes())
}

// Generate starts .inc file generation and returns immediately
func (h *EditorHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateRequest(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	gen, err := h.svc.Generate(r.Context(), req.Path)
	if err != nil {
		if errors.Is(err, service.ErrServiceClosed) {
			h.writeError(w, "Service unavailable", err.Error(), http.StatusServiceUnavailable)
			return
		}
		h.logger.Error("failed to start generation", zap.String("path", req.Path), zap.Error(err))
		h.writeError(w, "Failed to start generation", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, gen, http.StatusAccepted)
}

// ListGenerations returns recent generation runs, newest first
func (h *EditorHandler) ListGenerations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			h.writeError(w, "Invalid limit", "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	history, err := h.svc.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list generations", zap.Error(err))
		h.writeError(w, "Failed to list generations", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, history, http.StatusOK)
}

// GetGeneration returns one recorded generation run
func (h *EditorHandler) GetGeneration(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	gen, err := h.svc.Generation(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		h.writeError(w, "Failed to get generation", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, gen, http.StatusOK)
}

// GetWorkDir returns the default generation target
func (h *EditorHandler) GetWorkDir(w http.ResponseWriter, r *http.Request) {
	dir, err := h.svc.WorkDir()
	if err != nil {
		h.writeError(w, "Failed to resolve working directory", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]string{"path": dir}, http.StatusOK)
}

// Helper methods

func (h *EditorHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON", zap.Error(err))
	}
}

func (h *EditorHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.logger.Error("failed to encode error response", zap.Error(err))
	}
}
