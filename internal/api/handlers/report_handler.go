package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/avenk/careerpath-be/internal/auth"
	"github.com/avenk/careerpath-be/internal/services"
)

// ReportHandler handles report generation and retrieval.
type ReportHandler struct {
	service services.ReportServiceProvider
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service services.ReportServiceProvider) *ReportHandler {
	return &ReportHandler{service: service}
}

// Generate builds a report for the authenticated user's latest analyzed
// assessment and streams the bytes as a download.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	stored, rendered, err := h.service.Generate(r.Context(), claims.UserID)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", claims.UserID).Msg("Report generation failed")
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="CareerAssessment_%s.txt"`, stored.UniqueID))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(rendered)))
	w.Write(rendered)
}

// List returns the authenticated user's report rows.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	reports, err := h.service.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to list reports")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reports)
}

// GetByUniqueID returns a report row by its public identifier. The route is
// deliberately unauthenticated: the identifier is an unguessable share link,
// and any holder may read the snapshot.
func (h *ReportHandler) GetByUniqueID(w http.ResponseWriter, r *http.Request) {
	uniqueID := chi.URLParam(r, "uniqueId")

	report, err := h.service.GetByUniqueID(r.Context(), uniqueID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}
