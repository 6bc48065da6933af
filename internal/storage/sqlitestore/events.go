package sqlitestore

import (
	"context"
	"fmt"
	"time"

	"github.com/avenk/careerpath-be/internal/models"
)

// CreateEvent appends an audit event.
func (s *Store) CreateEvent(ctx context.Context, e models.AuditEvent) (models.AuditEvent, error) {
	e.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO events (type, level, message, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
		e.Type, e.Level, e.Message, e.UserID, e.CreatedAt)
	if err != nil {
		return models.AuditEvent{}, fmt.Errorf("insert event: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return models.AuditEvent{}, err
	}
	return e, nil
}

// RecentEventsByUser returns the most recent events visible to a user: their
// own plus system-wide ones.
func (s *Store) RecentEventsByUser(ctx context.Context, userID int64, limit int) ([]models.AuditEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, level, message, user_id, created_at FROM events
		 WHERE user_id = ? OR user_id IS NULL
		 ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []models.AuditEvent
	for rows.Next() {
		var e models.AuditEvent
		if err := rows.Scan(&e.ID, &e.Type, &e.Level, &e.Message, &e.UserID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
