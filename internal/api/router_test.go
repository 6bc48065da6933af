package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avenk/careerpath-be/internal/auth"
	"github.com/avenk/careerpath-be/internal/models"
	"github.com/avenk/careerpath-be/internal/realtime"
	"github.com/avenk/careerpath-be/internal/services"
	"github.com/avenk/careerpath-be/internal/storage/memstore"
)

// fakeGateway satisfies gateway.Gateway with canned payloads so the full HTTP
// stack can run without the external recommendation service.
type fakeGateway struct{}

func (fakeGateway) GenerateQuestions(_ context.Context, _ []models.QuestionResponse) ([]models.Question, error) {
	return []models.Question{
		{ID: 1, Question: "What energizes you most?", Type: "multiple-choice", Options: []string{"People", "Data"}, Category: "interests"},
		{ID: 2, Question: "Rate your comfort with ambiguity.", Type: "scale", Category: "personality"},
	}, nil
}

func (fakeGateway) AnalyzeResponses(_ context.Context, _ []models.QuestionResponse) (json.RawMessage, error) {
	return json.RawMessage(`{"careerPaths":[{"title":"Software Engineer","match":92}],"strengths":["Focus"]}`), nil
}

func (fakeGateway) GenerateRoadmap(_ context.Context, careerTitle string, _ json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(fmt.Sprintf(`{"careerTitle":%q,"phases":[]}`, careerTitle)), nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memstore.New()
	hub := realtime.NewHub()
	go hub.Run()

	tokens := auth.NewManager("test-secret", time.Hour)
	events := services.NewEventService(store, hub)
	users := services.NewUserService(store, events)
	assessments := services.NewAssessmentService(store, fakeGateway{}, events)
	forms := services.NewFormService(store, events)
	reports := services.NewReportService(store, events)

	router := NewRouter(tokens, hub, users, assessments, forms, reports, events, "http://localhost:3000")
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestFullAssessmentFlow(t *testing.T) {
	srv := newTestServer(t)

	// Register and capture the first token.
	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "user@example.com", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var signup struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	decodeBody(t, resp, &signup)
	require.NotEmpty(t, signup.Token)
	assert.Equal(t, "user@example.com", signup.User.Email)

	// A wrong password is rejected without hinting that the account exists.
	resp = doJSON(t, srv, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "user@example.com", "password": "pw124",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, srv, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "user@example.com", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var signin struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &signin)
	token := signin.Token

	// Fetch the survey questions.
	resp = doJSON(t, srv, http.MethodGet, "/api/survey/questions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var questionSet struct {
		Questions []models.Question `json:"questions"`
	}
	decodeBody(t, resp, &questionSet)
	require.NotEmpty(t, questionSet.Questions)

	// Submit answers and receive the analysis.
	responses := make([]map[string]any, 5)
	for i := range responses {
		responses[i] = map[string]any{
			"questionId":   i + 1,
			"questionText": fmt.Sprintf("Question %d", i+1),
			"answer":       fmt.Sprintf("Answer %d", i+1),
		}
	}
	resp = doJSON(t, srv, http.MethodPost, "/api/survey/submit", token, map[string]any{"responses": responses})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var results struct {
		CareerPaths []map[string]any `json:"careerPaths"`
	}
	decodeBody(t, resp, &results)
	require.NotEmpty(t, results.CareerPaths)

	// The latest assessment now carries the results.
	resp = doJSON(t, srv, http.MethodGet, "/api/assessment/results", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var latest models.Assessment
	decodeBody(t, resp, &latest)
	assert.True(t, latest.Analyzed())

	// Generate the downloadable report.
	resp = doJSON(t, srv, http.MethodPost, "/api/pdf/generate", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "CareerAssessment_")
	var report bytes.Buffer
	_, err := report.ReadFrom(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, report.String(), "Software Engineer")

	// The report row is visible in the history and via the public share link.
	resp = doJSON(t, srv, http.MethodGet, "/api/admin/pdf-reports", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []models.PdfReport
	decodeBody(t, resp, &rows)
	require.Len(t, rows, 1)

	resp = doJSON(t, srv, http.MethodGet, "/api/pdf/"+rows[0].UniqueID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var shared models.PdfReport
	decodeBody(t, resp, &shared)
	assert.Equal(t, rows[0].ID, shared.ID)
}

func TestAuthMiddlewareOnProtectedRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/api/survey/questions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, srv, http.MethodGet, "/api/survey/questions", "not-a-token", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestSignupValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "not-an-email", "password": "",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Details, "email")
	assert.Contains(t, body.Details, "password")
}

func TestSignupAcceptsShortPassword(t *testing.T) {
	srv := newTestServer(t)

	// Password policy is presence-only; length is the user's choice.
	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "short@example.com", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var signup struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &signup)
	assert.NotEmpty(t, signup.Token)
}

func TestDuplicateSignup(t *testing.T) {
	srv := newTestServer(t)

	creds := map[string]string{"email": "dup@example.com", "password": "pw123"}
	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", creds)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestFormRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "forms@example.com", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var signup struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &signup)
	token := signup.Token

	// No form yet: an empty object, not an error.
	resp = doJSON(t, srv, http.MethodGet, "/api/forms/education", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var empty map[string]any
	decodeBody(t, resp, &empty)
	assert.Empty(t, empty)

	resp = doJSON(t, srv, http.MethodPost, "/api/forms/education", token, map[string]string{
		"degree": "BSc", "major": "CS", "university": "State",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A second submission supersedes the first on read.
	resp = doJSON(t, srv, http.MethodPost, "/api/forms/education", token, map[string]string{
		"degree": "MSc", "major": "CS", "university": "State",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, srv, http.MethodGet, "/api/forms/education", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var form models.EducationForm
	decodeBody(t, resp, &form)
	assert.Equal(t, "MSc", form.Degree)
}

func TestFormsAcceptPartialSubmissions(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "partial@example.com", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var signup struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &signup)
	token := signup.Token

	// Profile fields are all optional; an empty education form is stored.
	resp = doJSON(t, srv, http.MethodPost, "/api/forms/education", token, map[string]string{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edu models.EducationForm
	decodeBody(t, resp, &edu)
	assert.NotZero(t, edu.ID)
	assert.Empty(t, edu.Degree)

	resp = doJSON(t, srv, http.MethodPost, "/api/forms/job-application", token, map[string]string{
		"experience": "5 years",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var job models.JobApplication
	decodeBody(t, resp, &job)
	assert.NotZero(t, job.ID)
	assert.Empty(t, job.FullName)
	assert.Equal(t, "5 years", job.Experience)
}

func TestRoadmapRequiresCareerTitle(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "roadmap@example.com", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var signup struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &signup)

	resp = doJSON(t, srv, http.MethodPost, "/api/roadmap/generate", signup.Token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, srv, http.MethodPost, "/api/roadmap/generate", signup.Token, map[string]string{
		"careerTitle": "Data Scientist",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Roadmap json.RawMessage `json:"roadmap"`
	}
	decodeBody(t, resp, &out)
	assert.Contains(t, string(out.Roadmap), "Data Scientist")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
