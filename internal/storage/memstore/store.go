package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avenk/careerpath-be/internal/models"
)

// Store is the in-memory Store implementation, intended for development and
// tests only. All collections live behind one mutex; nothing escapes the
// repository boundary.
type Store struct {
	mu sync.Mutex

	users           map[int64]models.User
	assessments     map[int64]models.Assessment
	educationForms  map[int64]models.EducationForm
	jobApplications map[int64]models.JobApplication
	reports         map[int64]models.PdfReport
	events          map[int64]models.AuditEvent

	nextUserID       int64
	nextAssessmentID int64
	nextEducationID  int64
	nextJobAppID     int64
	nextReportID     int64
	nextEventID      int64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:            make(map[int64]models.User),
		assessments:      make(map[int64]models.Assessment),
		educationForms:   make(map[int64]models.EducationForm),
		jobApplications:  make(map[int64]models.JobApplication),
		reports:          make(map[int64]models.PdfReport),
		events:           make(map[int64]models.AuditEvent),
		nextUserID:       1,
		nextAssessmentID: 1,
		nextEducationID:  1,
		nextJobAppID:     1,
		nextReportID:     1,
		nextEventID:      1,
	}
}

// CreateUser inserts a new user, rejecting duplicate emails with an exact
// (case-sensitive) comparison.
func (s *Store) CreateUser(_ context.Context, email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return models.User{}, models.ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           s.nextUserID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.nextUserID++
	s.users[user.ID] = user
	return user, nil
}

// GetUserByID retrieves a user by id.
func (s *Store) GetUserByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return user, nil
}

// GetUserByEmail retrieves a user by exact email match.
func (s *Store) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

// CreateAssessment persists a new assessment.
func (s *Store) CreateAssessment(_ context.Context, a models.Assessment) (models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextAssessmentID
	s.nextAssessmentID++
	a.CreatedAt = time.Now().UTC()
	s.assessments[a.ID] = a
	return a, nil
}

// ListAssessmentsByUser returns a user's assessments, newest first.
func (s *Store) ListAssessmentsByUser(_ context.Context, userID int64) ([]models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Assessment
	for _, a := range s.assessments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sortNewestFirst(out, func(a models.Assessment) (time.Time, int64) { return a.CreatedAt, a.ID })
	return out, nil
}

// LatestAssessmentByUser returns the newest assessment for a user.
func (s *Store) LatestAssessmentByUser(ctx context.Context, userID int64) (models.Assessment, error) {
	all, _ := s.ListAssessmentsByUser(ctx, userID)
	if len(all) == 0 {
		return models.Assessment{}, models.ErrNotFound
	}
	return all[0], nil
}

// GetAssessment retrieves an assessment by id.
func (s *Store) GetAssessment(_ context.Context, id int64) (models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assessments[id]
	if !ok {
		return models.Assessment{}, models.ErrNotFound
	}
	return a, nil
}

// UpdateAssessmentResults sets the results blob on an existing assessment.
func (s *Store) UpdateAssessmentResults(_ context.Context, id int64, results json.RawMessage) (models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assessments[id]
	if !ok {
		return models.Assessment{}, models.ErrNotFound
	}
	a.Results = results
	s.assessments[id] = a
	return a, nil
}

// CreateEducationForm inserts a new education form row.
func (s *Store) CreateEducationForm(_ context.Context, f models.EducationForm) (models.EducationForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = s.nextEducationID
	s.nextEducationID++
	f.CreatedAt = time.Now().UTC()
	s.educationForms[f.ID] = f
	return f, nil
}

// LatestEducationFormByUser returns the most recent education form for a user.
func (s *Store) LatestEducationFormByUser(_ context.Context, userID int64) (models.EducationForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.EducationForm
	for _, f := range s.educationForms {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return models.EducationForm{}, models.ErrNotFound
	}
	sortNewestFirst(out, func(f models.EducationForm) (time.Time, int64) { return f.CreatedAt, f.ID })
	return out[0], nil
}

// CreateJobApplication inserts a new job application row.
func (s *Store) CreateJobApplication(_ context.Context, a models.JobApplication) (models.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextJobAppID
	s.nextJobAppID++
	a.CreatedAt = time.Now().UTC()
	s.jobApplications[a.ID] = a
	return a, nil
}

// LatestJobApplicationByUser returns the most recent job application for a user.
func (s *Store) LatestJobApplicationByUser(_ context.Context, userID int64) (models.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.JobApplication
	for _, a := range s.jobApplications {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return models.JobApplication{}, models.ErrNotFound
	}
	sortNewestFirst(out, func(a models.JobApplication) (time.Time, int64) { return a.CreatedAt, a.ID })
	return out[0], nil
}

// CreateReport persists a report audit row.
func (s *Store) CreateReport(_ context.Context, r models.PdfReport) (models.PdfReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reports {
		if existing.UniqueID == r.UniqueID {
			return models.PdfReport{}, fmt.Errorf("report unique id %s already exists", r.UniqueID)
		}
	}

	r.ID = s.nextReportID
	s.nextReportID++
	r.CreatedAt = time.Now().UTC()
	s.reports[r.ID] = r
	return r, nil
}

// ListReportsByUser returns a user's report history, newest first.
func (s *Store) ListReportsByUser(_ context.Context, userID int64) ([]models.PdfReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.PdfReport
	for _, r := range s.reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sortNewestFirst(out, func(r models.PdfReport) (time.Time, int64) { return r.CreatedAt, r.ID })
	return out, nil
}

// GetReportByUniqueID retrieves a report by its public identifier.
func (s *Store) GetReportByUniqueID(_ context.Context, uniqueID string) (models.PdfReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reports {
		if r.UniqueID == uniqueID {
			return r, nil
		}
	}
	return models.PdfReport{}, models.ErrNotFound
}

// CreateEvent appends an audit event.
func (s *Store) CreateEvent(_ context.Context, e models.AuditEvent) (models.AuditEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextEventID
	s.nextEventID++
	e.CreatedAt = time.Now().UTC()
	s.events[e.ID] = e
	return e, nil
}

// RecentEventsByUser returns a user's own and system-wide events, newest first.
func (s *Store) RecentEventsByUser(_ context.Context, userID int64, limit int) ([]models.AuditEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AuditEvent
	for _, e := range s.events {
		if e.UserID == nil || *e.UserID == userID {
			out = append(out, e)
		}
	}
	sortNewestFirst(out, func(e models.AuditEvent) (time.Time, int64) { return e.CreatedAt, e.ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// sortNewestFirst orders by creation time descending, id descending as tiebreak.
func sortNewestFirst[T any](items []T, key func(T) (time.Time, int64)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti.Equal(tj) {
			return idi > idj
		}
		return ti.After(tj)
	})
}
