package commands

import (
	"encoding/json"
	"time"

	"gatherly/contexts/event-planning/poll-lifecycle/ports"
)

func newPollEnvelope(
	eventID string,
	eventType string,
	planEventID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Notifications are partitioned by the owning plan event so consumers see
	// tally updates and the close event for one event in order.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		OccurredAt:    occurredAt.UTC(),
		SourceService: "poll-lifecycle",
		SchemaVersion: 1,
		PartitionKey:  planEventID,
		Data:          payload,
	}, nil
}

func normalizeClosesAt(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := value.UTC()
	return &normalized
}
