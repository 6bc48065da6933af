package services

import (
	"context"

	"github.com/avenk/careerpath-be/internal/models"
	"github.com/avenk/careerpath-be/internal/storage"
)

// FormServiceProvider defines the interface for profile form services.
type FormServiceProvider interface {
	SubmitEducationForm(ctx context.Context, form models.EducationForm) (models.EducationForm, error)
	LatestEducationForm(ctx context.Context, userID int64) (models.EducationForm, error)
	SubmitJobApplication(ctx context.Context, app models.JobApplication) (models.JobApplication, error)
	LatestJobApplication(ctx context.Context, userID int64) (models.JobApplication, error)
}

// FormService manages the auxiliary profile forms. Submissions always insert
// a new row; reads return the most recent one, so older submissions remain as
// history without ever being served again.
type FormService struct {
	store  storage.Store
	events EventServiceProvider
}

// NewFormService creates a new FormService.
func NewFormService(store storage.Store, events EventServiceProvider) *FormService {
	return &FormService{store: store, events: events}
}

// SubmitEducationForm stores a new education form for the user.
func (s *FormService) SubmitEducationForm(ctx context.Context, form models.EducationForm) (models.EducationForm, error) {
	stored, err := s.store.CreateEducationForm(ctx, form)
	if err != nil {
		return models.EducationForm{}, err
	}
	s.events.Record(ctx, &form.UserID, "form.education", "info", "Education form submitted")
	return stored, nil
}

// LatestEducationForm returns the user's current education form.
func (s *FormService) LatestEducationForm(ctx context.Context, userID int64) (models.EducationForm, error) {
	return s.store.LatestEducationFormByUser(ctx, userID)
}

// SubmitJobApplication stores a new job application for the user.
func (s *FormService) SubmitJobApplication(ctx context.Context, app models.JobApplication) (models.JobApplication, error) {
	stored, err := s.store.CreateJobApplication(ctx, app)
	if err != nil {
		return models.JobApplication{}, err
	}
	s.events.Record(ctx, &app.UserID, "form.job_application", "info", "Job application form submitted")
	return stored, nil
}

// LatestJobApplication returns the user's current job application.
func (s *FormService) LatestJobApplication(ctx context.Context, userID int64) (models.JobApplication, error) {
	return s.store.LatestJobApplicationByUser(ctx, userID)
}
