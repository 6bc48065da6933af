package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avenk/careerpath-be/internal/models"
	"github.com/avenk/careerpath-be/internal/storage/memstore"
)

// stubGateway is a deterministic Gateway for tests.
type stubGateway struct {
	questions   []models.Question
	analysis    json.RawMessage
	roadmap     json.RawMessage
	err         error
	analyzeCnt  int
	lastContext []models.QuestionResponse
}

func (g *stubGateway) GenerateQuestions(_ context.Context, previous []models.QuestionResponse) ([]models.Question, error) {
	g.lastContext = previous
	if g.err != nil {
		return nil, g.err
	}
	return g.questions, nil
}

func (g *stubGateway) AnalyzeResponses(_ context.Context, _ []models.QuestionResponse) (json.RawMessage, error) {
	g.analyzeCnt++
	if g.err != nil {
		return nil, g.err
	}
	return g.analysis, nil
}

func (g *stubGateway) GenerateRoadmap(_ context.Context, _ string, _ json.RawMessage) (json.RawMessage, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.roadmap, nil
}

func surveyResponses(n int) []models.QuestionResponse {
	out := make([]models.QuestionResponse, n)
	for i := range out {
		out[i] = models.QuestionResponse{
			QuestionID:   i + 1,
			QuestionText: "question",
			Answer:       json.RawMessage(`"answer"`),
		}
	}
	return out
}

func newAssessmentFixture(gw *stubGateway) (*AssessmentService, *memstore.Store) {
	store := memstore.New()
	events := NewEventService(store, nil)
	return NewAssessmentService(store, gw, events), store
}

func TestSubmitSurvey_Success(t *testing.T) {
	t.Parallel()

	analysis := json.RawMessage(`{"careerPaths":[{"title":"Software Engineer","match":90}]}`)
	gw := &stubGateway{analysis: analysis}
	svc, store := newAssessmentFixture(gw)
	ctx := context.Background()

	results, err := svc.SubmitSurvey(ctx, 1, surveyResponses(5))
	require.NoError(t, err)
	assert.JSONEq(t, string(analysis), string(results))

	latest, err := store.LatestAssessmentByUser(ctx, 1)
	require.NoError(t, err)
	assert.True(t, latest.Analyzed())
	assert.Len(t, latest.Responses, 5)
	require.NotNil(t, latest.CompletedAt)
}

func TestSubmitSurvey_EmptyResponses(t *testing.T) {
	t.Parallel()

	svc, store := newAssessmentFixture(&stubGateway{})
	ctx := context.Background()

	_, err := svc.SubmitSurvey(ctx, 1, nil)
	assert.ErrorIs(t, err, models.ErrEmptyResponses)

	_, err = store.LatestAssessmentByUser(ctx, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSubmitSurvey_GatewayFailureLeavesCreatedRow(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{err: models.ErrGatewayUnavailable}
	svc, store := newAssessmentFixture(gw)
	ctx := context.Background()

	_, err := svc.SubmitSurvey(ctx, 1, surveyResponses(3))
	assert.ErrorIs(t, err, models.ErrGatewayUnavailable)

	// The assessment row exists but stays unanalyzed; a resubmission creates
	// a fresh one rather than retrying this row.
	latest, err := store.LatestAssessmentByUser(ctx, 1)
	require.NoError(t, err)
	assert.False(t, latest.Analyzed())
}

func TestLatestAssessment_ReturnsNthOfN(t *testing.T) {
	t.Parallel()

	analysis := json.RawMessage(`{"careerPaths":[{"title":"Data Scientist"}]}`)
	gw := &stubGateway{analysis: analysis}
	svc, _ := newAssessmentFixture(gw)
	ctx := context.Background()

	const n = 4
	for j := 0; j < n; j++ {
		_, err := svc.SubmitSurvey(ctx, 1, surveyResponses(2))
		require.NoError(t, err)
	}

	list, err := svc.ListAssessments(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, n)

	latest, err := svc.LatestAssessment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, latest.ID)
}

func TestQuestions_PassesPreviousAnswers(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		questions: []models.Question{{ID: 1, Question: "q", Type: "text", Category: "c"}},
		analysis:  json.RawMessage(`{"ok":true}`),
	}
	svc, _ := newAssessmentFixture(gw)
	ctx := context.Background()

	// First session: no history.
	_, err := svc.Questions(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, gw.lastContext)

	_, err = svc.SubmitSurvey(ctx, 1, surveyResponses(5))
	require.NoError(t, err)

	// Follow-up session: the latest responses feed the prompt.
	_, err = svc.Questions(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, gw.lastContext, 5)
}

func TestSetResults_OwnershipCheck(t *testing.T) {
	t.Parallel()

	svc, store := newAssessmentFixture(&stubGateway{})
	ctx := context.Background()

	a, err := store.CreateAssessment(ctx, models.Assessment{UserID: 1})
	require.NoError(t, err)

	results := json.RawMessage(`{"careerPaths":[]}`)

	_, err = svc.SetResults(ctx, 2, a.ID, results)
	assert.ErrorIs(t, err, models.ErrNotFound)

	updated, err := svc.SetResults(ctx, 1, a.ID, results)
	require.NoError(t, err)
	assert.JSONEq(t, string(results), string(updated.Results))
}
