package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gatherly/contexts/event-planning/event-service/domain/entities"
	domainerrors "gatherly/contexts/event-planning/event-service/domain/errors"
	"gatherly/contexts/event-planning/event-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) CreateEvent(ctx context.Context, input ports.CreateEventInput) (entities.Event, error) {
	title := strings.TrimSpace(input.Title)
	createdBy := strings.TrimSpace(input.CreatedBy)
	if title == "" || createdBy == "" {
		return entities.Event{}, domainerrors.ErrInvalidEventInput
	}
	if !isValidWindow(input.StartsAt, input.EndsAt) {
		return entities.Event{}, domainerrors.ErrInvalidSchedule
	}

	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Event{}, err
	}
	now := s.now()
	event := entities.Event{
		EventID:   eventID,
		Title:     title,
		Location:  strings.TrimSpace(input.Location),
		StartsAt:  normalizeTime(input.StartsAt),
		EndsAt:    normalizeTime(input.EndsAt),
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.SaveEvent(ctx, event); err != nil {
		return entities.Event{}, err
	}

	s.logger().Info("event created",
		"event", "event_created",
		"module", "event-planning/event-service",
		"layer", "application",
		"event_id", event.EventID,
		"created_by", createdBy,
	)
	return event, nil
}

func (s Service) GetEvent(ctx context.Context, eventID string) (entities.Event, error) {
	trimmed := strings.TrimSpace(eventID)
	if trimmed == "" {
		return entities.Event{}, domainerrors.ErrInvalidEventInput
	}
	return s.Repo.GetEvent(ctx, trimmed)
}

// UpdateEvent patches title and schedule. The location field is deliberately
// not patchable here: it is owned by poll resolution.
func (s Service) UpdateEvent(ctx context.Context, eventID string, input ports.UpdateEventInput) (entities.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return entities.Event{}, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return entities.Event{}, domainerrors.ErrInvalidEventInput
		}
		event.Title = title
	}
	if input.StartsAt != nil {
		event.StartsAt = normalizeTime(input.StartsAt)
	}
	if input.EndsAt != nil {
		event.EndsAt = normalizeTime(input.EndsAt)
	}
	if !isValidWindow(event.StartsAt, event.EndsAt) {
		return entities.Event{}, domainerrors.ErrInvalidSchedule
	}

	event.UpdatedAt = s.now()
	if err := s.Repo.SaveEvent(ctx, event); err != nil {
		return entities.Event{}, err
	}

	s.logger().Info("event updated",
		"event", "event_updated",
		"module", "event-planning/event-service",
		"layer", "application",
		"event_id", event.EventID,
	)
	return event, nil
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func isValidWindow(startsAt *time.Time, endsAt *time.Time) bool {
	if startsAt == nil || endsAt == nil {
		return true
	}
	return !endsAt.Before(*startsAt)
}

func normalizeTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := value.UTC()
	return &normalized
}
