package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/avenk/careerpath-be/internal/models"
)

// respondJSON writes a JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError writes the {"error": ...} body every failure path uses.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondValidation writes a 400 with per-field validation messages.
func respondValidation(w http.ResponseWriter, details map[string]string) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":   "Invalid input",
		"details": details,
	})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, models.ErrDuplicateEmail):
		respondError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, models.ErrEmptyResponses):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNoResults):
		respondError(w, http.StatusNotFound, "No assessment results found")
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, models.ErrGatewayTimeout):
		respondError(w, http.StatusGatewayTimeout, "Recommendation service timed out, please try again")
	case errors.Is(err, models.ErrGatewayUnavailable):
		respondError(w, http.StatusBadGateway, "Recommendation service failed, please try again")
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
