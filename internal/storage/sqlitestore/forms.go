package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avenk/careerpath-be/internal/models"
)

// CreateEducationForm inserts a new education form row. Older rows for the
// same user remain but stop being "latest".
func (s *Store) CreateEducationForm(ctx context.Context, f models.EducationForm) (models.EducationForm, error) {
	f.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO education_forms (user_id, degree, major, university, graduation_year, gpa, additional_info, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.UserID, f.Degree, f.Major, f.University, f.GraduationYear, f.GPA, f.AdditionalInfo, f.CreatedAt)
	if err != nil {
		return models.EducationForm{}, fmt.Errorf("insert education form: %w", err)
	}
	f.ID, err = res.LastInsertId()
	if err != nil {
		return models.EducationForm{}, err
	}
	return f, nil
}

// LatestEducationFormByUser returns the most recent education form for a user.
func (s *Store) LatestEducationFormByUser(ctx context.Context, userID int64) (models.EducationForm, error) {
	var f models.EducationForm
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, degree, major, university, graduation_year, gpa, additional_info, created_at
		 FROM education_forms WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, userID)
	err := row.Scan(&f.ID, &f.UserID, &f.Degree, &f.Major, &f.University, &f.GraduationYear, &f.GPA, &f.AdditionalInfo, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EducationForm{}, models.ErrNotFound
		}
		return models.EducationForm{}, fmt.Errorf("scan education form: %w", err)
	}
	return f, nil
}

// CreateJobApplication inserts a new job application row.
func (s *Store) CreateJobApplication(ctx context.Context, a models.JobApplication) (models.JobApplication, error) {
	a.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO job_applications (user_id, full_name, position, experience, skills, phone, additional_info, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.FullName, a.Position, a.Experience, a.Skills, a.Phone, a.AdditionalInfo, a.CreatedAt)
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("insert job application: %w", err)
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return models.JobApplication{}, err
	}
	return a, nil
}

// LatestJobApplicationByUser returns the most recent job application for a user.
func (s *Store) LatestJobApplicationByUser(ctx context.Context, userID int64) (models.JobApplication, error) {
	var a models.JobApplication
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, full_name, position, experience, skills, phone, additional_info, created_at
		 FROM job_applications WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, userID)
	err := row.Scan(&a.ID, &a.UserID, &a.FullName, &a.Position, &a.Experience, &a.Skills, &a.Phone, &a.AdditionalInfo, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JobApplication{}, models.ErrNotFound
		}
		return models.JobApplication{}, fmt.Errorf("scan job application: %w", err)
	}
	return a, nil
}
