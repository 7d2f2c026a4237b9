package ports

import (
	"context"
	"time"

	"gatherly/contexts/event-planning/event-service/domain/entities"
)

type CreateEventInput struct {
	Title     string
	CreatedBy string
	Location  string
	StartsAt  *time.Time
	EndsAt    *time.Time
}

type UpdateEventInput struct {
	Title    *string
	StartsAt *time.Time
	EndsAt   *time.Time
}

type Repository interface {
	SaveEvent(ctx context.Context, event entities.Event) error
	GetEvent(ctx context.Context, eventID string) (entities.Event, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
