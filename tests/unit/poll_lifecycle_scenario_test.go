package unit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	polllifecycle "gatherly/contexts/event-planning/poll-lifecycle"
	"gatherly/contexts/event-planning/poll-lifecycle/application/workers"
	domainerrors "gatherly/contexts/event-planning/poll-lifecycle/domain/errors"
	"gatherly/contexts/event-planning/poll-lifecycle/ports"
	httptransport "gatherly/contexts/event-planning/poll-lifecycle/transport/http"
)

type recordingPublisher struct {
	topics []string
	events []ports.EventEnvelope
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func seedVotingEvent(module polllifecycle.Module, eventID string, organizerID string, voterIDs []string) {
	module.Store.SetEvent(ports.EventProjection{EventID: eventID, Title: "Team offsite", Location: "TBD"})
	module.Store.SetIdentity(organizerID, true)
	module.Store.SetMember(ports.MemberProjection{
		EventID: eventID,
		UserID:  organizerID,
		Status:  ports.MembershipStatusAccepted,
	})
	for _, voterID := range voterIDs {
		module.Store.SetIdentity(voterID, true)
		module.Store.SetMember(ports.MemberProjection{
			EventID: eventID,
			UserID:  voterID,
			Status:  ports.MembershipStatusAccepted,
		})
	}
}

// TestPollLifecycleTieBreakScenario walks the full lifecycle: a poll opens
// with two venue options, six accepted members split their votes evenly, the
// plain close fails on the shared lead, and the organizer's explicit pick
// closes the poll, freezes the winner and names the event location.
func TestPollLifecycleTieBreakScenario(t *testing.T) {
	module := polllifecycle.NewInMemoryModule(nil)
	ctx := context.Background()

	voters := make([]string, 0, 6)
	for i := 1; i <= 6; i++ {
		voters = append(voters, fmt.Sprintf("voter-%d", i))
	}
	seedVotingEvent(module, "event-1", "organizer-1", voters)

	created, err := module.Handler.CreatePollHandler(ctx, "event-1", httptransport.CreatePollRequest{
		OrganizerID: "organizer-1",
		Options: []httptransport.CreateOptionInput{
			{Label: "Rooftop"},
			{Label: "Park"},
		},
	})
	if err != nil {
		t.Fatalf("create poll failed: %v", err)
	}
	if created.Data.Status != "open" {
		t.Fatalf("new poll status = %q", created.Data.Status)
	}

	// Three votes per option.
	for index, voterID := range voters {
		_, err := module.Handler.SubmitVoteHandler(ctx, "event-1", httptransport.SubmitVoteRequest{
			OptionID: created.Data.Options[index%2].ID,
			VoterID:  voterID,
		})
		if err != nil {
			t.Fatalf("vote by %s failed: %v", voterID, err)
		}
	}

	current, err := module.Handler.GetPollHandler(ctx, "event-1")
	if err != nil {
		t.Fatalf("get poll failed: %v", err)
	}
	for _, option := range current.Data.Options {
		if option.Tally != 3 {
			t.Fatalf("option %q tally = %d, want 3", option.Label, option.Tally)
		}
	}

	if _, err := module.Handler.ClosePollHandler(ctx, "event-1", httptransport.ClosePollRequest{}); !errors.Is(err, domainerrors.ErrTieBreakRequired) {
		t.Fatalf("tied close error = %v, want ErrTieBreakRequired", err)
	}

	finalOptionID := created.Data.Options[1].ID
	closed, err := module.Handler.ClosePollHandler(ctx, "event-1", httptransport.ClosePollRequest{
		FinalOptionID: finalOptionID,
	})
	if err != nil {
		t.Fatalf("tie-break close failed: %v", err)
	}
	if closed.Data.Status != "closed" || closed.Data.WinnerOptionID != finalOptionID {
		t.Fatalf("closed poll = %+v", closed.Data)
	}

	event, ok := module.Store.Event("event-1")
	if !ok {
		t.Fatal("event projection missing")
	}
	if event.Location != "Park" {
		t.Fatalf("event location = %q, want winner label written back", event.Location)
	}

	// Replaying the close with the same winner is idempotent; naming another
	// option is not.
	if _, err := module.Handler.ClosePollHandler(ctx, "event-1", httptransport.ClosePollRequest{
		FinalOptionID: finalOptionID,
	}); err != nil {
		t.Fatalf("idempotent close failed: %v", err)
	}
	if _, err := module.Handler.ClosePollHandler(ctx, "event-1", httptransport.ClosePollRequest{
		FinalOptionID: created.Data.Options[0].ID,
	}); !errors.Is(err, domainerrors.ErrWinnerFrozen) {
		t.Fatalf("re-close with different winner error = %v, want ErrWinnerFrozen", err)
	}

	if _, err := module.Handler.SubmitVoteHandler(ctx, "event-1", httptransport.SubmitVoteRequest{
		OptionID: finalOptionID,
		VoterID:  voters[0],
	}); !errors.Is(err, domainerrors.ErrPollClosed) {
		t.Fatalf("vote after close error = %v, want ErrPollClosed", err)
	}
}

// TestPollLifecycleNotificationsReachBroker drains the outbox through the
// relay after a vote and a close and checks the broker sees both event types.
func TestPollLifecycleNotificationsReachBroker(t *testing.T) {
	module := polllifecycle.NewInMemoryModule(nil)
	ctx := context.Background()

	seedVotingEvent(module, "event-1", "organizer-1", []string{"voter-1"})

	created, err := module.Handler.CreatePollHandler(ctx, "event-1", httptransport.CreatePollRequest{
		OrganizerID: "organizer-1",
		Options:     []httptransport.CreateOptionInput{{Label: "Rooftop"}, {Label: "Park"}},
	})
	if err != nil {
		t.Fatalf("create poll failed: %v", err)
	}
	if _, err := module.Handler.SubmitVoteHandler(ctx, "event-1", httptransport.SubmitVoteRequest{
		OptionID: created.Data.Options[0].ID,
		VoterID:  "voter-1",
	}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if _, err := module.Handler.ClosePollHandler(ctx, "event-1", httptransport.ClosePollRequest{}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	publisher := &recordingPublisher{}
	relay := workers.NotificationRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     module.Store,
		Topic:     "gatherly.notifications",
	}
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	if len(publisher.events) != 2 {
		t.Fatalf("published %d events, want 2", len(publisher.events))
	}
	types := map[string]bool{}
	for _, event := range publisher.events {
		types[event.EventType] = true
		if event.PartitionKey != "event-1" {
			t.Fatalf("partition key = %q, want event id", event.PartitionKey)
		}
	}
	if !types["poll.tally_updated"] || !types["poll.closed"] {
		t.Fatalf("event types = %v", types)
	}

	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("%d rows still pending after relay", len(pending))
	}
}
