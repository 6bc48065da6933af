package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/avenk/careerpath-be/internal/auth"
	"github.com/avenk/careerpath-be/internal/models"
	"github.com/avenk/careerpath-be/internal/services"
)

// AssessmentHandler handles survey, assessment and roadmap requests.
type AssessmentHandler struct {
	service services.AssessmentServiceProvider
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(service services.AssessmentServiceProvider) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

// Questions returns a gateway-generated survey question set.
func (h *AssessmentHandler) Questions(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	questions, err := h.service.Questions(r.Context(), claims.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to generate questions")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// SubmitPayload defines the structure for survey submission requests.
type SubmitPayload struct {
	Responses []models.QuestionResponse `json:"responses"`
}

// Submit stores the survey responses and returns the gateway analysis.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload SubmitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.service.SubmitSurvey(r.Context(), claims.UserID, payload.Responses)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", claims.UserID).Msg("Survey submission failed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}

// Results returns the user's latest assessment, analyzed or not.
func (h *AssessmentHandler) Results(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	assessment, err := h.service.LatestAssessment(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assessment)
}

// List returns the user's assessment history, newest first.
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	assessments, err := h.service.ListAssessments(r.Context(), claims.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to list assessments")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assessments)
}

// CreatePayload defines the structure for direct assessment creation.
type CreatePayload struct {
	Responses   []models.QuestionResponse `json:"responses"`
	Results     json.RawMessage           `json:"results"`
	CompletedAt *time.Time                `json:"completedAt"`
}

// Create stores an assessment row without running the analysis flow.
func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	assessment, err := h.service.CreateAssessment(r.Context(), claims.UserID, payload.Responses, payload.Results, payload.CompletedAt)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to create assessment")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assessment)
}

// Update sets the results blob on one of the user's assessments.
func (h *AssessmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid assessment id")
		return
	}

	var payload struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	assessment, err := h.service.SetResults(r.Context(), claims.UserID, id, payload.Results)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assessment)
}

// RoadmapPayload defines the structure for roadmap generation requests.
type RoadmapPayload struct {
	CareerTitle string          `json:"careerTitle"`
	UserProfile json.RawMessage `json:"userProfile"`
}

// Roadmap returns a gateway-generated roadmap for a career title.
func (h *AssessmentHandler) Roadmap(w http.ResponseWriter, r *http.Request) {
	var payload RoadmapPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.CareerTitle == "" {
		respondError(w, http.StatusBadRequest, "Career title is required")
		return
	}

	roadmap, err := h.service.GenerateRoadmap(r.Context(), payload.CareerTitle, payload.UserProfile)
	if err != nil {
		log.Error().Err(err).Str("career", payload.CareerTitle).Msg("Failed to generate roadmap")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"roadmap": roadmap})
}
