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

const reportColumns = "id, user_id, unique_id, assessment_id, education_form_id, job_application_id, payload_json, file_path, created_at"

// CreateReport persists the immutable audit row for a generated report.
func (s *Store) CreateReport(ctx context.Context, r models.PdfReport) (models.PdfReport, error) {
	r.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO pdf_reports (user_id, unique_id, assessment_id, education_form_id, job_application_id, payload_json, file_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserID, r.UniqueID, r.AssessmentID, r.EducationFormID, r.JobApplicationID, string(r.Payload), r.FilePath, r.CreatedAt)
	if err != nil {
		return models.PdfReport{}, fmt.Errorf("insert report: %w", err)
	}
	r.ID, err = res.LastInsertId()
	if err != nil {
		return models.PdfReport{}, err
	}
	return r, nil
}

// ListReportsByUser returns a user's report history, newest first.
func (s *Store) ListReportsByUser(ctx context.Context, userID int64) ([]models.PdfReport, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+reportColumns+" FROM pdf_reports WHERE user_id = ? ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []models.PdfReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// GetReportByUniqueID retrieves a report by its public identifier.
func (s *Store) GetReportByUniqueID(ctx context.Context, uniqueID string) (models.PdfReport, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM pdf_reports WHERE unique_id = ?", uniqueID)
	r, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PdfReport{}, models.ErrNotFound
		}
		return models.PdfReport{}, err
	}
	return r, nil
}

func scanReport(r rowScanner) (models.PdfReport, error) {
	var (
		report      models.PdfReport
		eduID       sql.NullInt64
		jobID       sql.NullInt64
		payloadJSON sql.NullString
		filePath    sql.NullString
	)
	err := r.Scan(&report.ID, &report.UserID, &report.UniqueID, &report.AssessmentID, &eduID, &jobID, &payloadJSON, &filePath, &report.CreatedAt)
	if err != nil {
		return models.PdfReport{}, fmt.Errorf("scan report: %w", err)
	}
	if eduID.Valid {
		report.EducationFormID = &eduID.Int64
	}
	if jobID.Valid {
		report.JobApplicationID = &jobID.Int64
	}
	if payloadJSON.Valid && payloadJSON.String != "" {
		report.Payload = json.RawMessage(payloadJSON.String)
	}
	if filePath.Valid {
		report.FilePath = &filePath.String
	}
	return report, nil
}
