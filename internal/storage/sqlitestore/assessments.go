package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avenk/careerpath-be/internal/models"
)

const assessmentColumns = "id, user_id, responses_json, results_json, completed_at, created_at"

// CreateAssessment persists a new assessment in its unanalyzed state.
func (s *Store) CreateAssessment(ctx context.Context, a models.Assessment) (models.Assessment, error) {
	responsesJSON, err := json.Marshal(a.Responses)
	if err != nil {
		return models.Assessment{}, fmt.Errorf("marshal responses: %w", err)
	}

	var resultsJSON any
	if a.Analyzed() {
		resultsJSON = string(a.Results)
	}

	a.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO assessments (user_id, responses_json, results_json, completed_at, created_at) VALUES (?, ?, ?, ?, ?)",
		a.UserID, string(responsesJSON), resultsJSON, a.CompletedAt, a.CreatedAt)
	if err != nil {
		return models.Assessment{}, fmt.Errorf("insert assessment: %w", err)
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return models.Assessment{}, err
	}
	return a, nil
}

// ListAssessmentsByUser returns a user's full assessment history, newest first.
func (s *Store) ListAssessmentsByUser(ctx context.Context, userID int64) ([]models.Assessment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+assessmentColumns+" FROM assessments WHERE user_id = ? ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var assessments []models.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

// LatestAssessmentByUser returns the newest assessment for a user, using the
// row id to break created_at ties.
func (s *Store) LatestAssessmentByUser(ctx context.Context, userID int64) (models.Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+assessmentColumns+" FROM assessments WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1", userID)
	return scanAssessmentRow(row)
}

// GetAssessment retrieves an assessment by id.
func (s *Store) GetAssessment(ctx context.Context, id int64) (models.Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+assessmentColumns+" FROM assessments WHERE id = ?", id)
	return scanAssessmentRow(row)
}

// UpdateAssessmentResults sets the results blob on an existing assessment.
// This is the only mutation ever applied after creation.
func (s *Store) UpdateAssessmentResults(ctx context.Context, id int64, results json.RawMessage) (models.Assessment, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE assessments SET results_json = ? WHERE id = ?", string(results), id)
	if err != nil {
		return models.Assessment{}, fmt.Errorf("update assessment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Assessment{}, err
	}
	if affected == 0 {
		return models.Assessment{}, models.ErrNotFound
	}
	return s.GetAssessment(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(r rowScanner) (models.Assessment, error) {
	var (
		a             models.Assessment
		responsesJSON sql.NullString
		resultsJSON   sql.NullString
		completedAt   sql.NullTime
	)
	if err := r.Scan(&a.ID, &a.UserID, &responsesJSON, &resultsJSON, &completedAt, &a.CreatedAt); err != nil {
		return models.Assessment{}, fmt.Errorf("scan assessment: %w", err)
	}
	if responsesJSON.Valid && responsesJSON.String != "" {
		if err := json.Unmarshal([]byte(responsesJSON.String), &a.Responses); err != nil {
			return models.Assessment{}, fmt.Errorf("decode responses: %w", err)
		}
	}
	if resultsJSON.Valid && resultsJSON.String != "" {
		a.Results = json.RawMessage(resultsJSON.String)
	}
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	return a, nil
}

func scanAssessmentRow(row *sql.Row) (models.Assessment, error) {
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Assessment{}, models.ErrNotFound
		}
		return models.Assessment{}, err
	}
	return a, nil
}
