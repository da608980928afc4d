package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cx-tal-miterani/ticket-admission/internal/admission"
	"github.com/cx-tal-miterani/ticket-admission/internal/service"
	"github.com/cx-tal-miterani/ticket-admission/shared/models"
	"github.com/gorilla/mux"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	deskService service.DeskService
}

// NewHandler creates a new Handler instance
func NewHandler(deskService service.DeskService) *Handler {
	return &Handler{
		deskService: deskService,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, service.ErrBatchNotFound):
		respondError(w, http.StatusNotFound, "Batch not found")
	case errors.Is(err, admission.ErrUnknownFlight):
		respondError(w, http.StatusNotFound, "Flight not found")
	case errors.Is(err, admission.ErrUnknownPassenger):
		respondError(w, http.StatusNotFound, "Passenger not found")
	case errors.Is(err, service.ErrInvalidBatch):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusRequestTimeout, "Request cancelled before any directive ran")
	case errors.Is(err, service.ErrBatchesDisabled):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// CreateSession handles POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.deskService.CreateSession(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// GetSession handles GET /api/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.deskService.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.deskService.DeleteSession(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExecuteDirectives handles POST /api/sessions/{id}/directives
func (h *Handler) ExecuteDirectives(w http.ResponseWriter, r *http.Request) {
	var req models.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Directives) == 0 {
		respondError(w, http.StatusBadRequest, "At least one directive is required")
		return
	}

	lines, err := h.deskService.Execute(r.Context(), mux.Vars(r)["id"], req.Directives)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if lines == nil {
		lines = []string{}
	}
	respondJSON(w, http.StatusOK, models.ExecuteResponse{Lines: lines})
}

// GetReport handles GET /api/sessions/{id}/flights/{flight}/report
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	report, err := h.deskService.GetReport(r.Context(), vars["id"], vars["flight"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// GetPassenger handles GET /api/sessions/{id}/passengers/{name}
func (h *Handler) GetPassenger(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	info, err := h.deskService.GetPassenger(r.Context(), vars["id"], vars["name"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// SubmitBatch handles POST /api/batches
func (h *Handler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.InputPath == "" && len(req.Directives) == 0 {
		respondError(w, http.StatusBadRequest, "Input path or directives are required")
		return
	}

	batch, err := h.deskService.SubmitBatch(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, batch)
}

// GetBatch handles GET /api/batches/{id}
func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	state, err := h.deskService.GetBatch(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
