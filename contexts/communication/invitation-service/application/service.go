package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gatherly/contexts/communication/invitation-service/domain/entities"
	domainerrors "gatherly/contexts/communication/invitation-service/domain/errors"
	"gatherly/contexts/communication/invitation-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Events ports.EventReader
	Clock  ports.Clock
	Logger *slog.Logger
}

type InviteInput struct {
	EventID   string
	UserID    string
	InvitedBy string
}

// InviteMember creates a membership in invited status. Members are the only
// users the poll lifecycle will ever let vote, so this is where the voting
// population is defined.
func (s Service) InviteMember(ctx context.Context, input InviteInput) (entities.Membership, error) {
	eventID := strings.TrimSpace(input.EventID)
	userID := strings.TrimSpace(input.UserID)
	invitedBy := strings.TrimSpace(input.InvitedBy)
	if eventID == "" || userID == "" || invitedBy == "" {
		return entities.Membership{}, domainerrors.ErrInvalidInviteInput
	}

	_, found, err := s.Events.GetEvent(ctx, eventID)
	if err != nil {
		return entities.Membership{}, err
	}
	if !found {
		return entities.Membership{}, domainerrors.ErrEventNotFound
	}

	membership := entities.Membership{
		EventID:   eventID,
		UserID:    userID,
		Status:    entities.MembershipStatusInvited,
		InvitedBy: invitedBy,
		InvitedAt: s.now(),
	}
	if err := s.Repo.CreateMembership(ctx, membership); err != nil {
		return entities.Membership{}, err
	}

	s.logger().Info("member invited",
		"event", "invitation_member_invited",
		"module", "communication/invitation-service",
		"layer", "application",
		"event_id", eventID,
		"user_id", userID,
		"invited_by", invitedBy,
	)
	return membership, nil
}

// RespondToInvite applies an accept or decline to a pending invitation.
// Transitions are one-way: answered invitations reject any further response
// rather than flipping state back.
func (s Service) RespondToInvite(ctx context.Context, eventID string, userID string, action string) (entities.Membership, error) {
	normalized := strings.ToLower(strings.TrimSpace(action))
	if normalized != "accept" && normalized != "decline" {
		return entities.Membership{}, domainerrors.ErrInvalidResponse
	}

	membership, err := s.Repo.GetMembership(ctx, strings.TrimSpace(eventID), strings.TrimSpace(userID))
	if err != nil {
		return entities.Membership{}, err
	}
	if !membership.CanRespond() {
		return entities.Membership{}, domainerrors.ErrAlreadyResponded
	}

	now := s.now()
	if normalized == "accept" {
		membership.Status = entities.MembershipStatusAccepted
		membership.JoinedAt = &now
	} else {
		membership.Status = entities.MembershipStatusDeclined
	}
	if err := s.Repo.UpdateMembership(ctx, membership); err != nil {
		return entities.Membership{}, err
	}

	s.logger().Info("invitation answered",
		"event", "invitation_answered",
		"module", "communication/invitation-service",
		"layer", "application",
		"event_id", membership.EventID,
		"user_id", membership.UserID,
		"status", string(membership.Status),
	)
	return membership, nil
}

func (s Service) ListMembers(ctx context.Context, eventID string) ([]entities.Membership, error) {
	trimmed := strings.TrimSpace(eventID)
	if trimmed == "" {
		return nil, domainerrors.ErrInvalidInviteInput
	}
	return s.Repo.ListMemberships(ctx, trimmed)
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
