package application

import (
	"context"
	"errors"
	"testing"

	"gatherly/contexts/communication/invitation-service/adapters/memory"
	"gatherly/contexts/communication/invitation-service/domain/entities"
	domainerrors "gatherly/contexts/communication/invitation-service/domain/errors"
	"gatherly/contexts/communication/invitation-service/ports"
)

func newTestService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SetEvent(ports.EventProjection{EventID: "event-1", Title: "Team offsite"})
	return Service{Repo: store, Events: store, Clock: store}, store
}

func invite(t *testing.T, service Service, userID string) entities.Membership {
	t.Helper()
	membership, err := service.InviteMember(context.Background(), InviteInput{
		EventID:   "event-1",
		UserID:    userID,
		InvitedBy: "organizer-1",
	})
	if err != nil {
		t.Fatalf("InviteMember(%s) error = %v", userID, err)
	}
	return membership
}

func TestInviteMemberStartsInvited(t *testing.T) {
	service, _ := newTestService(t)

	membership := invite(t, service, "user-1")
	if membership.Status != entities.MembershipStatusInvited {
		t.Fatalf("status = %q, want invited", membership.Status)
	}
	if membership.JoinedAt != nil {
		t.Fatal("joined_at set before acceptance")
	}
}

func TestInviteMemberUnknownEvent(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.InviteMember(context.Background(), InviteInput{
		EventID:   "missing",
		UserID:    "user-1",
		InvitedBy: "organizer-1",
	})
	if !errors.Is(err, domainerrors.ErrEventNotFound) {
		t.Fatalf("InviteMember() error = %v, want ErrEventNotFound", err)
	}
}

func TestInviteMemberDuplicateRejected(t *testing.T) {
	service, _ := newTestService(t)
	invite(t, service, "user-1")

	_, err := service.InviteMember(context.Background(), InviteInput{
		EventID:   "event-1",
		UserID:    "user-1",
		InvitedBy: "organizer-1",
	})
	if !errors.Is(err, domainerrors.ErrAlreadyInvited) {
		t.Fatalf("InviteMember() error = %v, want ErrAlreadyInvited", err)
	}
}

func TestRespondAcceptSetsJoinedAt(t *testing.T) {
	service, _ := newTestService(t)
	invite(t, service, "user-1")

	membership, err := service.RespondToInvite(context.Background(), "event-1", "user-1", "accept")
	if err != nil {
		t.Fatalf("RespondToInvite() error = %v", err)
	}
	if membership.Status != entities.MembershipStatusAccepted {
		t.Fatalf("status = %q, want accepted", membership.Status)
	}
	if membership.JoinedAt == nil {
		t.Fatal("joined_at not set on acceptance")
	}
}

func TestRespondDeclineLeavesJoinedAtEmpty(t *testing.T) {
	service, _ := newTestService(t)
	invite(t, service, "user-1")

	membership, err := service.RespondToInvite(context.Background(), "event-1", "user-1", "decline")
	if err != nil {
		t.Fatalf("RespondToInvite() error = %v", err)
	}
	if membership.Status != entities.MembershipStatusDeclined {
		t.Fatalf("status = %q, want declined", membership.Status)
	}
	if membership.JoinedAt != nil {
		t.Fatal("joined_at set on decline")
	}
}

func TestRespondTransitionsAreOneWay(t *testing.T) {
	service, _ := newTestService(t)
	invite(t, service, "user-1")
	if _, err := service.RespondToInvite(context.Background(), "event-1", "user-1", "accept"); err != nil {
		t.Fatalf("RespondToInvite() error = %v", err)
	}

	if _, err := service.RespondToInvite(context.Background(), "event-1", "user-1", "decline"); !errors.Is(err, domainerrors.ErrAlreadyResponded) {
		t.Fatalf("second response error = %v, want ErrAlreadyResponded", err)
	}
}

func TestRespondRejectsUnknownAction(t *testing.T) {
	service, _ := newTestService(t)
	invite(t, service, "user-1")

	if _, err := service.RespondToInvite(context.Background(), "event-1", "user-1", "maybe"); !errors.Is(err, domainerrors.ErrInvalidResponse) {
		t.Fatalf("RespondToInvite() error = %v, want ErrInvalidResponse", err)
	}
}

func TestRespondWithoutInvite(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.RespondToInvite(context.Background(), "event-1", "stranger", "accept"); !errors.Is(err, domainerrors.ErrInviteNotFound) {
		t.Fatalf("RespondToInvite() error = %v, want ErrInviteNotFound", err)
	}
}

func TestListMembers(t *testing.T) {
	service, _ := newTestService(t)
	invite(t, service, "user-1")
	invite(t, service, "user-2")

	members, err := service.ListMembers(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("member count = %d, want 2", len(members))
	}
}
