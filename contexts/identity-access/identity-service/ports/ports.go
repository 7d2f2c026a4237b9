package ports

import (
	"context"
	"time"

	"gatherly/contexts/identity-access/identity-service/domain/entities"
)

type RegisterUserInput struct {
	DisplayName string
	Email       string
}

type Repository interface {
	// SaveUser inserts or updates a user. Inserting a second user with the
	// same email returns domain ErrDuplicateUser.
	SaveUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, userID string) (entities.User, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
