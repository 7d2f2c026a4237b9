package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned notification envelope. It is the
// shape written to the outbox and published to the broker, so fields must
// stay backward compatible.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}
