package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/avenk/careerpath-be/internal/models"
	"github.com/avenk/careerpath-be/internal/realtime"
	"github.com/avenk/careerpath-be/internal/storage"
)

// EventServiceProvider defines the interface for audit event services.
type EventServiceProvider interface {
	Record(ctx context.Context, userID *int64, eventType, level, message string)
	Recent(ctx context.Context, userID int64, limit int) ([]models.AuditEvent, error)
}

// EventService writes audit events and pushes them to the owning user's open
// realtime sessions. Recording is best-effort: a failed event write is logged
// but never fails the operation that produced it.
type EventService struct {
	store storage.Store
	hub   *realtime.Hub
}

// NewEventService creates a new EventService.
func NewEventService(store storage.Store, hub *realtime.Hub) *EventService {
	return &EventService{store: store, hub: hub}
}

// Record logs a new event and notifies the user's sessions.
func (s *EventService) Record(ctx context.Context, userID *int64, eventType, level, message string) {
	event, err := s.store.CreateEvent(ctx, models.AuditEvent{
		Type:    eventType,
		Level:   level,
		Message: message,
		UserID:  userID,
	})
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record audit event")
		return
	}

	if s.hub != nil && userID != nil {
		s.hub.NotifyUser(*userID, realtime.Encode("event", event))
	}
}

// Recent retrieves the most recent events visible to a user.
func (s *EventService) Recent(ctx context.Context, userID int64, limit int) ([]models.AuditEvent, error) {
	return s.store.RecentEventsByUser(ctx, userID, limit)
}
