package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/avenk/careerpath-be/internal/auth"
	"github.com/avenk/careerpath-be/internal/services"
)

// EventHandler handles HTTP requests for the audit event feed.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent returns the authenticated user's recent events.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	events, err := h.service.Recent(r.Context(), claims.UserID, limit)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to retrieve events")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, events)
}
