package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterUserRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type UserPayload struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserResponse struct {
	Data UserPayload `json:"data"`
}

// ValidationPayload is the contract other services depend on when checking
// an organizer before a mutation. Field names are frozen.
type ValidationPayload struct {
	UserID   string `json:"user_id"`
	IsActive bool   `json:"is_active"`
}
