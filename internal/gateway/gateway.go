package gateway

import (
	"context"
	"encoding/json"

	"github.com/avenk/careerpath-be/internal/models"
)

// Gateway is the call contract of the external recommendation service. The
// service's reasoning is opaque: it takes prompts and returns structured JSON.
// Implementations must surface models.ErrGatewayTimeout for deadline failures
// and models.ErrGatewayUnavailable for everything else, so callers can tell a
// slow gateway from a broken one.
type Gateway interface {
	// GenerateQuestions produces a fresh set of survey questions, optionally
	// informed by the user's previous answers.
	GenerateQuestions(ctx context.Context, previous []models.QuestionResponse) ([]models.Question, error)

	// AnalyzeResponses turns a full response set into the career analysis
	// blob. The blob is stored and served opaquely.
	AnalyzeResponses(ctx context.Context, responses []models.QuestionResponse) (json.RawMessage, error)

	// GenerateRoadmap produces a step-by-step roadmap toward a career title.
	GenerateRoadmap(ctx context.Context, careerTitle string, profile json.RawMessage) (json.RawMessage, error)
}
