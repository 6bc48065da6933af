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

func newReportFixture(t *testing.T) (*ReportService, *memstore.Store, models.User) {
	t.Helper()

	store := memstore.New()
	events := NewEventService(store, nil)
	svc := NewReportService(store, events)

	user, err := store.CreateUser(context.Background(), "report@example.com", "hash")
	require.NoError(t, err)
	return svc, store, user
}

func analyzedAssessment(t *testing.T, store *memstore.Store, userID int64) models.Assessment {
	t.Helper()

	a, err := store.CreateAssessment(context.Background(), models.Assessment{
		UserID:    userID,
		Responses: []models.QuestionResponse{{QuestionID: 1, Answer: json.RawMessage(`"x"`)}},
		Results:   json.RawMessage(`{"careerPaths":[{"title":"Software Engineer","match":91}]}`),
	})
	require.NoError(t, err)
	return a
}

func TestGenerate_NoAssessment(t *testing.T) {
	t.Parallel()

	svc, store, user := newReportFixture(t)
	ctx := context.Background()

	_, _, err := svc.Generate(ctx, user.ID)
	assert.ErrorIs(t, err, models.ErrNoResults)

	// No partial side effects: nothing was persisted.
	reports, err := store.ListReportsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestGenerate_UnanalyzedAssessment(t *testing.T) {
	t.Parallel()

	svc, store, user := newReportFixture(t)
	ctx := context.Background()

	_, err := store.CreateAssessment(ctx, models.Assessment{UserID: user.ID})
	require.NoError(t, err)

	_, _, err = svc.Generate(ctx, user.ID)
	assert.ErrorIs(t, err, models.ErrNoResults)
}

func TestGenerate_Success(t *testing.T) {
	t.Parallel()

	svc, store, user := newReportFixture(t)
	ctx := context.Background()

	a := analyzedAssessment(t, store, user.ID)
	edu, err := store.CreateEducationForm(ctx, models.EducationForm{UserID: user.ID, Degree: "BSc", Major: "CS"})
	require.NoError(t, err)
	job, err := store.CreateJobApplication(ctx, models.JobApplication{UserID: user.ID, FullName: "Ada Example", Position: "Engineer"})
	require.NoError(t, err)

	stored, rendered, err := svc.Generate(ctx, user.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, rendered)
	assert.NotEmpty(t, stored.UniqueID)
	assert.Equal(t, a.ID, stored.AssessmentID)
	require.NotNil(t, stored.EducationFormID)
	assert.Equal(t, edu.ID, *stored.EducationFormID)
	require.NotNil(t, stored.JobApplicationID)
	assert.Equal(t, job.ID, *stored.JobApplicationID)

	// The snapshot captures the form holder's name.
	var snap models.ReportSnapshot
	require.NoError(t, json.Unmarshal(stored.Payload, &snap))
	assert.Equal(t, "Ada Example", snap.UserName)
	assert.Equal(t, user.Email, snap.UserEmail)
}

func TestGenerate_FormsOptional(t *testing.T) {
	t.Parallel()

	svc, store, user := newReportFixture(t)
	analyzedAssessment(t, store, user.ID)

	stored, rendered, err := svc.Generate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, rendered)
	assert.Nil(t, stored.EducationFormID)
	assert.Nil(t, stored.JobApplicationID)
}

func TestGenerate_UniqueIDsNeverCollide(t *testing.T) {
	t.Parallel()

	svc, store, user := newReportFixture(t)
	analyzedAssessment(t, store, user.ID)
	ctx := context.Background()

	seen := make(map[string]bool)
	for j := 0; j < 50; j++ {
		stored, _, err := svc.Generate(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, seen[stored.UniqueID], "unique id %s repeated", stored.UniqueID)
		seen[stored.UniqueID] = true
	}
}

func TestGetByUniqueID_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, store, user := newReportFixture(t)
	analyzedAssessment(t, store, user.ID)
	ctx := context.Background()

	stored, _, err := svc.Generate(ctx, user.ID)
	require.NoError(t, err)

	got, err := svc.GetByUniqueID(ctx, stored.UniqueID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.JSONEq(t, string(stored.Payload), string(got.Payload))

	_, err = svc.GetByUniqueID(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
