package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"gatherly/contexts/event-planning/poll-lifecycle/adapters/memory"
	"gatherly/contexts/event-planning/poll-lifecycle/ports"
)

type capturingPublisher struct {
	topics []string
	events []ports.EventEnvelope
	fail   bool
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func appendEnvelope(t *testing.T, store *memory.Store, eventID string, eventType string) {
	t.Helper()
	err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		OccurredAt:    time.Now().UTC(),
		SourceService: "poll-lifecycle",
		SchemaVersion: 1,
		PartitionKey:  "event-1",
		Data:          []byte(`{"poll_id":"poll-1"}`),
	})
	if err != nil {
		t.Fatalf("append outbox: %v", err)
	}
}

func TestRunOncePublishesAndMarksPending(t *testing.T) {
	store := memory.NewStore()
	appendEnvelope(t, store, "evt-1", "poll.tally_updated")
	appendEnvelope(t, store, "evt-2", "poll.closed")
	publisher := &capturingPublisher{}
	relay := NotificationRelay{
		Outbox:    store,
		Publisher: publisher,
		Topic:     "gatherly.notifications",
		BatchSize: 10,
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("published = %d, want 2", len(publisher.events))
	}
	for _, topic := range publisher.topics {
		if topic != "gatherly.notifications" {
			t.Fatalf("topic = %q", topic)
		}
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox() error = %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after relay = %d, want 0", len(pending))
	}
}

func TestRunOnceStopsOnPublishFailureAndKeepsRowsPending(t *testing.T) {
	store := memory.NewStore()
	appendEnvelope(t, store, "evt-1", "poll.tally_updated")
	relay := NotificationRelay{
		Outbox:    store,
		Publisher: &capturingPublisher{fail: true},
		Topic:     "gatherly.notifications",
	}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("RunOnce() error = nil, want broker failure")
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1 (row must stay for retry)", len(pending))
	}
}

func TestRunOnceEmptyOutboxIsANoop(t *testing.T) {
	relay := NotificationRelay{
		Outbox:    memory.NewStore(),
		Publisher: &capturingPublisher{fail: true},
		Topic:     "gatherly.notifications",
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
}
