package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gatherly/contexts/identity-access/identity-service/domain/entities"
	domainerrors "gatherly/contexts/identity-access/identity-service/domain/errors"
	"gatherly/contexts/identity-access/identity-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Validation is the answer other services ask for before trusting a user.
type Validation struct {
	UserID   string
	IsActive bool
}

func (s Service) RegisterUser(ctx context.Context, input ports.RegisterUserInput) (entities.User, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if displayName == "" || !isValidEmail(email) {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}

	userID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	now := s.now()
	user := entities.User{
		UserID:      userID,
		DisplayName: displayName,
		Email:       email,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	s.logger().Info("user registered",
		"event", "user_registered",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return user, nil
}

func (s Service) GetUser(ctx context.Context, userID string) (entities.User, error) {
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}
	return s.Repo.GetUser(ctx, trimmed)
}

// ValidateUser reports whether the account exists and is active. Unknown
// users surface ErrUserNotFound rather than an inactive validation so that
// callers can distinguish a bad reference from a deactivated account.
func (s Service) ValidateUser(ctx context.Context, userID string) (Validation, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return Validation{}, err
	}
	return Validation{UserID: user.UserID, IsActive: user.Active}, nil
}

// DeactivateUser flips an account to inactive. Idempotent.
func (s Service) DeactivateUser(ctx context.Context, userID string) (entities.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return entities.User{}, err
	}
	if !user.Active {
		return user, nil
	}
	user.Active = false
	user.UpdatedAt = s.now()
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	s.logger().Info("user deactivated",
		"event", "user_deactivated",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return user, nil
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

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}
