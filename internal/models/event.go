package models

import "time"

// AuditEvent represents a loggable action or alert in the system.
type AuditEvent struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`  // e.g., "assessment.analyzed", "system.stats"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	UserID    *int64    `json:"userId,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}
