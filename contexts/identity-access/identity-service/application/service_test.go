package application

import (
	"context"
	"errors"
	"testing"

	"gatherly/contexts/identity-access/identity-service/adapters/memory"
	"gatherly/contexts/identity-access/identity-service/domain/entities"
	domainerrors "gatherly/contexts/identity-access/identity-service/domain/errors"
	"gatherly/contexts/identity-access/identity-service/ports"
)

func newTestService() Service {
	store := memory.NewStore()
	return Service{Repo: store, Clock: store, IDGen: store}
}

func registerUser(t *testing.T, service Service, name, email string) entities.User {
	t.Helper()
	user, err := service.RegisterUser(context.Background(), ports.RegisterUserInput{
		DisplayName: name,
		Email:       email,
	})
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	return user
}

func TestRegisterUserStartsActive(t *testing.T) {
	service := newTestService()

	user := registerUser(t, service, "Ada", "  Ada@Example.COM ")
	if user.UserID == "" {
		t.Fatal("user id not assigned")
	}
	if !user.Active {
		t.Fatal("new user not active")
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", user.Email)
	}
}

func TestRegisterUserValidatesInput(t *testing.T) {
	service := newTestService()

	cases := []struct {
		name        string
		displayName string
		email       string
	}{
		{"blank name", "  ", "ada@example.com"},
		{"missing at", "Ada", "ada.example.com"},
		{"at first", "Ada", "@example.com"},
		{"at last", "Ada", "ada@"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.RegisterUser(context.Background(), ports.RegisterUserInput{
				DisplayName: tc.displayName,
				Email:       tc.email,
			})
			if !errors.Is(err, domainerrors.ErrInvalidUserInput) {
				t.Fatalf("error = %v, want ErrInvalidUserInput", err)
			}
		})
	}
}

func TestRegisterUserDuplicateEmailRejected(t *testing.T) {
	service := newTestService()
	registerUser(t, service, "Ada", "ada@example.com")

	_, err := service.RegisterUser(context.Background(), ports.RegisterUserInput{
		DisplayName: "Other Ada",
		Email:       "ADA@example.com",
	})
	if !errors.Is(err, domainerrors.ErrDuplicateUser) {
		t.Fatalf("error = %v, want ErrDuplicateUser", err)
	}
}

func TestValidateUserStates(t *testing.T) {
	service := newTestService()
	user := registerUser(t, service, "Ada", "ada@example.com")

	validation, err := service.ValidateUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("ValidateUser() error = %v", err)
	}
	if !validation.IsActive || validation.UserID != user.UserID {
		t.Fatalf("validation = %+v", validation)
	}

	if _, err := service.DeactivateUser(context.Background(), user.UserID); err != nil {
		t.Fatalf("DeactivateUser() error = %v", err)
	}
	validation, err = service.ValidateUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("ValidateUser() after deactivation error = %v", err)
	}
	if validation.IsActive {
		t.Fatal("deactivated user still reported active")
	}

	// Unknown users are a lookup failure, not an inactive validation.
	if _, err := service.ValidateUser(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("unknown user error = %v, want ErrUserNotFound", err)
	}
}

func TestDeactivateUserIsIdempotent(t *testing.T) {
	service := newTestService()
	user := registerUser(t, service, "Ada", "ada@example.com")

	first, err := service.DeactivateUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("DeactivateUser() error = %v", err)
	}
	second, err := service.DeactivateUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("second DeactivateUser() error = %v", err)
	}
	if second.Active {
		t.Fatal("user active after deactivation")
	}
	if !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Fatal("repeated deactivation touched the record")
	}
}
