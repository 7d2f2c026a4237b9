package ports

import (
	"context"
	"time"

	"gatherly/contexts/communication/invitation-service/domain/entities"
)

type Repository interface {
	// CreateMembership inserts a new row; the composite primary key surfaces
	// duplicate invitations as ErrAlreadyInvited.
	CreateMembership(ctx context.Context, membership entities.Membership) error
	GetMembership(ctx context.Context, eventID string, userID string) (entities.Membership, error)
	UpdateMembership(ctx context.Context, membership entities.Membership) error
	ListMemberships(ctx context.Context, eventID string) ([]entities.Membership, error)
}

type EventProjection struct {
	EventID string
	Title   string
}

// EventReader is a read-only projection over events owned by the event
// service, used to reject invitations to events that do not exist.
type EventReader interface {
	GetEvent(ctx context.Context, eventID string) (EventProjection, bool, error)
}

type Clock interface {
	Now() time.Time
}
