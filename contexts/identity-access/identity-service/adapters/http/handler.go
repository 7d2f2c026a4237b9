package httpadapter

import (
	"context"
	"log/slog"

	"gatherly/contexts/identity-access/identity-service/application"
	"gatherly/contexts/identity-access/identity-service/domain/entities"
	"gatherly/contexts/identity-access/identity-service/ports"
	httptransport "gatherly/contexts/identity-access/identity-service/transport/http"
)

type Handler struct {
	Users  application.Service
	Logger *slog.Logger
}

func (h Handler) RegisterUserHandler(ctx context.Context, req httptransport.RegisterUserRequest) (httptransport.UserResponse, error) {
	user, err := h.Users.RegisterUser(ctx, ports.RegisterUserInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{Data: userPayload(user)}, nil
}

func (h Handler) GetUserHandler(ctx context.Context, userID string) (httptransport.UserResponse, error) {
	user, err := h.Users.GetUser(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{Data: userPayload(user)}, nil
}

func (h Handler) ValidateUserHandler(ctx context.Context, userID string) (httptransport.ValidationPayload, error) {
	validation, err := h.Users.ValidateUser(ctx, userID)
	if err != nil {
		return httptransport.ValidationPayload{}, err
	}
	return httptransport.ValidationPayload{
		UserID:   validation.UserID,
		IsActive: validation.IsActive,
	}, nil
}

func (h Handler) DeactivateUserHandler(ctx context.Context, userID string) (httptransport.UserResponse, error) {
	user, err := h.Users.DeactivateUser(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{Data: userPayload(user)}, nil
}

func userPayload(user entities.User) httptransport.UserPayload {
	return httptransport.UserPayload{
		ID:          user.UserID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		IsActive:    user.Active,
		CreatedAt:   user.CreatedAt,
	}
}
