package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/avenk/careerpath-be/internal/auth"
	"github.com/avenk/careerpath-be/internal/models"
	"github.com/avenk/careerpath-be/internal/services"
)

// FormHandler handles the auxiliary profile form endpoints.
type FormHandler struct {
	service services.FormServiceProvider
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(service services.FormServiceProvider) *FormHandler {
	return &FormHandler{service: service}
}

// EducationPayload defines the structure for education form submissions.
// Every field is optional; partial and even empty forms are stored as-is.
type EducationPayload struct {
	Degree         string `json:"degree"`
	Major          string `json:"major"`
	University     string `json:"university"`
	GraduationYear string `json:"graduationYear"`
	GPA            string `json:"gpa"`
	AdditionalInfo string `json:"additionalInfo"`
}

// SubmitEducation stores a new education form for the authenticated user.
func (h *FormHandler) SubmitEducation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload EducationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form, err := h.service.SubmitEducationForm(r.Context(), models.EducationForm{
		UserID:         claims.UserID,
		Degree:         payload.Degree,
		Major:          payload.Major,
		University:     payload.University,
		GraduationYear: payload.GraduationYear,
		GPA:            payload.GPA,
		AdditionalInfo: payload.AdditionalInfo,
	})
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to submit education form")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, form)
}

// GetEducation returns the user's current education form, or an empty object
// when none has been submitted.
func (h *FormHandler) GetEducation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	form, err := h.service.LatestEducationForm(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondJSON(w, http.StatusOK, map[string]string{})
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, form)
}

// JobApplicationPayload defines the structure for job application
// submissions. Like the education form, all fields are optional.
type JobApplicationPayload struct {
	FullName       string `json:"fullName"`
	Position       string `json:"position"`
	Experience     string `json:"experience"`
	Skills         string `json:"skills"`
	Phone          string `json:"phone"`
	AdditionalInfo string `json:"additionalInfo"`
}

// SubmitJobApplication stores a new job application for the authenticated user.
func (h *FormHandler) SubmitJobApplication(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload JobApplicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.service.SubmitJobApplication(r.Context(), models.JobApplication{
		UserID:         claims.UserID,
		FullName:       payload.FullName,
		Position:       payload.Position,
		Experience:     payload.Experience,
		Skills:         payload.Skills,
		Phone:          payload.Phone,
		AdditionalInfo: payload.AdditionalInfo,
	})
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to submit job application")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, app)
}

// GetJobApplication returns the user's current job application, or an empty
// object when none has been submitted.
func (h *FormHandler) GetJobApplication(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	app, err := h.service.LatestJobApplication(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondJSON(w, http.StatusOK, map[string]string{})
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, app)
}
