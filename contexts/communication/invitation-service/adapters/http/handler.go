package httpadapter

import (
	"context"
	"log/slog"

	"gatherly/contexts/communication/invitation-service/application"
	"gatherly/contexts/communication/invitation-service/domain/entities"
	httptransport "gatherly/contexts/communication/invitation-service/transport/http"
)

type Handler struct {
	Invitations application.Service
	Logger      *slog.Logger
}

func (h Handler) InviteMemberHandler(
	ctx context.Context,
	eventID string,
	req httptransport.InviteMemberRequest,
) (httptransport.MemberResponse, error) {
	membership, err := h.Invitations.InviteMember(ctx, application.InviteInput{
		EventID:   eventID,
		UserID:    req.UserID,
		InvitedBy: req.InvitedBy,
	})
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return httptransport.MemberResponse{Data: memberPayload(membership)}, nil
}

func (h Handler) RespondHandler(
	ctx context.Context,
	eventID string,
	userID string,
	req httptransport.RespondRequest,
) (httptransport.MemberResponse, error) {
	membership, err := h.Invitations.RespondToInvite(ctx, eventID, userID, req.Action)
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return httptransport.MemberResponse{Data: memberPayload(membership)}, nil
}

func (h Handler) ListMembersHandler(ctx context.Context, eventID string) (httptransport.MemberListResponse, error) {
	members, err := h.Invitations.ListMembers(ctx, eventID)
	if err != nil {
		return httptransport.MemberListResponse{}, err
	}
	payloads := make([]httptransport.MemberPayload, 0, len(members))
	for _, membership := range members {
		payloads = append(payloads, memberPayload(membership))
	}
	return httptransport.MemberListResponse{Data: payloads}, nil
}

func memberPayload(membership entities.Membership) httptransport.MemberPayload {
	return httptransport.MemberPayload{
		EventID:   membership.EventID,
		UserID:    membership.UserID,
		Status:    string(membership.Status),
		InvitedBy: membership.InvitedBy,
		InvitedAt: membership.InvitedAt,
		JoinedAt:  membership.JoinedAt,
	}
}
