package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avenk/careerpath-be/internal/gateway"
	"github.com/avenk/careerpath-be/internal/models"
	"github.com/avenk/careerpath-be/internal/storage"
)

// AssessmentServiceProvider defines the interface for assessment services.
type AssessmentServiceProvider interface {
	Questions(ctx context.Context, userID int64) ([]models.Question, error)
	SubmitSurvey(ctx context.Context, userID int64, responses []models.QuestionResponse) (json.RawMessage, error)
	LatestAssessment(ctx context.Context, userID int64) (models.Assessment, error)
	ListAssessments(ctx context.Context, userID int64) ([]models.Assessment, error)
	CreateAssessment(ctx context.Context, userID int64, responses []models.QuestionResponse, results json.RawMessage, completedAt *time.Time) (models.Assessment, error)
	SetResults(ctx context.Context, userID, assessmentID int64, results json.RawMessage) (models.Assessment, error)
	GenerateRoadmap(ctx context.Context, careerTitle string, profile json.RawMessage) (json.RawMessage, error)
}

// AssessmentService runs the survey lifecycle: question generation, survey
// submission with synchronous gateway analysis, and history retrieval.
type AssessmentService struct {
	store   storage.Store
	gateway gateway.Gateway
	events  EventServiceProvider
}

// NewAssessmentService creates a new AssessmentService.
func NewAssessmentService(store storage.Store, gw gateway.Gateway, events EventServiceProvider) *AssessmentService {
	return &AssessmentService{store: store, gateway: gw, events: events}
}

// Questions produces a survey question set, feeding the user's most recent
// answers to the gateway so follow-up sessions get fresh questions.
func (s *AssessmentService) Questions(ctx context.Context, userID int64) ([]models.Question, error) {
	var previous []models.QuestionResponse
	latest, err := s.store.LatestAssessmentByUser(ctx, userID)
	if err == nil {
		previous = latest.Responses
	}
	return s.gateway.GenerateQuestions(ctx, previous)
}

// SubmitSurvey persists the responses as a new assessment, then asks the
// gateway for the analysis and stores it on the same row. If the gateway
// fails the row keeps null results; the user resubmits to try again, which
// creates a fresh assessment.
func (s *AssessmentService) SubmitSurvey(ctx context.Context, userID int64, responses []models.QuestionResponse) (json.RawMessage, error) {
	if len(responses) == 0 {
		return nil, models.ErrEmptyResponses
	}

	now := time.Now().UTC()
	assessment, err := s.store.CreateAssessment(ctx, models.Assessment{
		UserID:      userID,
		Responses:   responses,
		CompletedAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	s.events.Record(ctx, &userID, "assessment.created", "info",
		fmt.Sprintf("Survey submitted with %d responses", len(responses)))

	results, err := s.gateway.AnalyzeResponses(ctx, responses)
	if err != nil {
		log.Warn().Err(err).Int64("assessment_id", assessment.ID).Msg("Gateway analysis failed, assessment left unanalyzed")
		s.events.Record(ctx, &userID, "assessment.analysis_failed", "warn",
			fmt.Sprintf("Analysis failed for assessment %d", assessment.ID))
		return nil, err
	}

	if _, err := s.store.UpdateAssessmentResults(ctx, assessment.ID, results); err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}
	s.events.Record(ctx, &userID, "assessment.analyzed", "info",
		fmt.Sprintf("Assessment %d analyzed", assessment.ID))

	return results, nil
}

// LatestAssessment returns the user's newest assessment, analyzed or not.
func (s *AssessmentService) LatestAssessment(ctx context.Context, userID int64) (models.Assessment, error) {
	return s.store.LatestAssessmentByUser(ctx, userID)
}

// ListAssessments returns the user's full assessment history, newest first.
func (s *AssessmentService) ListAssessments(ctx context.Context, userID int64) ([]models.Assessment, error) {
	return s.store.ListAssessmentsByUser(ctx, userID)
}

// CreateAssessment stores an assessment row directly, without involving the
// gateway. Used by clients that run their own analysis flow.
func (s *AssessmentService) CreateAssessment(ctx context.Context, userID int64, responses []models.QuestionResponse, results json.RawMessage, completedAt *time.Time) (models.Assessment, error) {
	return s.store.CreateAssessment(ctx, models.Assessment{
		UserID:      userID,
		Responses:   responses,
		Results:     results,
		CompletedAt: completedAt,
	})
}

// SetResults updates the results blob on one of the user's assessments. The
// ownership check keeps users from writing into each other's history.
func (s *AssessmentService) SetResults(ctx context.Context, userID, assessmentID int64, results json.RawMessage) (models.Assessment, error) {
	existing, err := s.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return models.Assessment{}, err
	}
	if existing.UserID != userID {
		return models.Assessment{}, models.ErrNotFound
	}
	return s.store.UpdateAssessmentResults(ctx, assessmentID, results)
}

// GenerateRoadmap asks the gateway for a roadmap toward the given career title.
func (s *AssessmentService) GenerateRoadmap(ctx context.Context, careerTitle string, profile json.RawMessage) (json.RawMessage, error) {
	return s.gateway.GenerateRoadmap(ctx, careerTitle, profile)
}
