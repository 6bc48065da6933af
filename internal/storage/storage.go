package storage

import (
	"context"
	"encoding/json"

	"github.com/avenk/careerpath-be/internal/models"
)

// Store is the persistence boundary for every entity in the system. Two
// implementations exist: the sqlite adapter (primary) and a mutex-guarded
// in-memory adapter used for development and tests.
//
// "Latest" always means highest created_at with the row id as tiebreak, so
// submissions racing onto the same timestamp still resolve deterministically.
type Store interface {
	// Users
	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	// Assessments
	CreateAssessment(ctx context.Context, a models.Assessment) (models.Assessment, error)
	ListAssessmentsByUser(ctx context.Context, userID int64) ([]models.Assessment, error)
	LatestAssessmentByUser(ctx context.Context, userID int64) (models.Assessment, error)
	GetAssessment(ctx context.Context, id int64) (models.Assessment, error)
	UpdateAssessmentResults(ctx context.Context, id int64, results json.RawMessage) (models.Assessment, error)

	// Forms
	CreateEducationForm(ctx context.Context, f models.EducationForm) (models.EducationForm, error)
	LatestEducationFormByUser(ctx context.Context, userID int64) (models.EducationForm, error)
	CreateJobApplication(ctx context.Context, a models.JobApplication) (models.JobApplication, error)
	LatestJobApplicationByUser(ctx context.Context, userID int64) (models.JobApplication, error)

	// Reports
	CreateReport(ctx context.Context, r models.PdfReport) (models.PdfReport, error)
	ListReportsByUser(ctx context.Context, userID int64) ([]models.PdfReport, error)
	GetReportByUniqueID(ctx context.Context, uniqueID string) (models.PdfReport, error)

	// Audit events
	CreateEvent(ctx context.Context, e models.AuditEvent) (models.AuditEvent, error)
	RecentEventsByUser(ctx context.Context, userID int64, limit int) ([]models.AuditEvent, error)
}
