package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avenk/careerpath-be/internal/models"
	"github.com/avenk/careerpath-be/internal/report"
	"github.com/avenk/careerpath-be/internal/storage"
)

// ReportServiceProvider defines the interface for report services.
type ReportServiceProvider interface {
	Generate(ctx context.Context, userID int64) (models.PdfReport, []byte, error)
	ListByUser(ctx context.Context, userID int64) ([]models.PdfReport, error)
	GetByUniqueID(ctx context.Context, uniqueID string) (models.PdfReport, error)
}

// ReportService assembles report snapshots and writes the immutable audit row
// for each generated report. The audit row must persist before any bytes
// leave the service; a failed write fails the whole generation.
type ReportService struct {
	store  storage.Store
	events EventServiceProvider
}

// NewReportService creates a new ReportService.
func NewReportService(store storage.Store, events EventServiceProvider) *ReportService {
	return &ReportService{store: store, events: events}
}

// Generate builds the report for the user's latest analyzed assessment.
// Education and job application forms are included when present. Returns
// models.ErrNoResults when no analyzed assessment exists, with no side
// effects in that case.
func (s *ReportService) Generate(ctx context.Context, userID int64) (models.PdfReport, []byte, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return models.PdfReport{}, nil, err
	}

	latest, err := s.store.LatestAssessmentByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.PdfReport{}, nil, models.ErrNoResults
		}
		return models.PdfReport{}, nil, err
	}
	if !latest.Analyzed() {
		return models.PdfReport{}, nil, models.ErrNoResults
	}

	snapshot := models.ReportSnapshot{
		UniqueID:    uuid.NewString(),
		UserEmail:   user.Email,
		UserName:    user.Email,
		Results:     latest.Results,
		GeneratedAt: time.Now().UTC(),
	}

	row := models.PdfReport{
		UserID:       userID,
		UniqueID:     snapshot.UniqueID,
		AssessmentID: latest.ID,
	}

	if eduForm, err := s.store.LatestEducationFormByUser(ctx, userID); err == nil {
		snapshot.EducationForm = &eduForm
		row.EducationFormID = &eduForm.ID
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.PdfReport{}, nil, err
	}

	if jobApp, err := s.store.LatestJobApplicationByUser(ctx, userID); err == nil {
		snapshot.JobApplication = &jobApp
		row.JobApplicationID = &jobApp.ID
		if jobApp.FullName != "" {
			snapshot.UserName = jobApp.FullName
		}
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.PdfReport{}, nil, err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return models.PdfReport{}, nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	row.Payload = payload

	rendered := report.Render(snapshot)

	// The audit row has to exist before the bytes are handed out; an orphan
	// download with no trail would defeat the audit model.
	stored, err := s.store.CreateReport(ctx, row)
	if err != nil {
		return models.PdfReport{}, nil, fmt.Errorf("persist report: %w", err)
	}

	s.events.Record(ctx, &userID, "report.generated", "info", "Report "+stored.UniqueID+" generated")

	return stored, rendered, nil
}

// ListByUser returns the user's report history.
func (s *ReportService) ListByUser(ctx context.Context, userID int64) ([]models.PdfReport, error) {
	return s.store.ListReportsByUser(ctx, userID)
}

// GetByUniqueID retrieves a report row by its public share identifier. No
// ownership check happens here: holding the identifier grants read access.
func (s *ReportService) GetByUniqueID(ctx context.Context, uniqueID string) (models.PdfReport, error) {
	return s.store.GetReportByUniqueID(ctx, uniqueID)
}
