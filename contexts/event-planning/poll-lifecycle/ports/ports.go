package ports

import (
	"context"
	"time"

	"gatherly/contexts/event-planning/poll-lifecycle/domain/entities"
	contractsv1 "gatherly/contracts/gen/events/v1"
)

type PollRepository interface {
	// CreatePoll persists the poll and its initial options in one transaction.
	CreatePoll(ctx context.Context, poll entities.Poll, options []entities.PollOption) error
	GetPollByEvent(ctx context.Context, eventID string) (entities.Poll, error)
	ListOptions(ctx context.Context, pollID string) ([]entities.PollOption, error)
	GetOption(ctx context.Context, optionID string) (entities.PollOption, error)
	AddOption(ctx context.Context, option entities.PollOption) error
	ClosePoll(ctx context.Context, pollID string, winnerOptionID string, closedAt time.Time) error
}

type VoteLedger interface {
	// AppendVote inserts one ledger row. Implementations surface the
	// one-vote-per-voter constraint as ErrDuplicateVote.
	AppendVote(ctx context.Context, vote entities.Vote) error
	CountVotesByOption(ctx context.Context, pollID string) (map[string]int, error)
}

type MembershipStatus string

const (
	MembershipStatusInvited  MembershipStatus = "invited"
	MembershipStatusAccepted MembershipStatus = "accepted"
	MembershipStatusDeclined MembershipStatus = "declined"
)

type MemberProjection struct {
	EventID string
	UserID  string
	Status  MembershipStatus
}

// MembershipReader is a read-only projection over event_members owned by the
// invitation service. It is the sole authorization gate for voting.
type MembershipReader interface {
	GetMember(ctx context.Context, eventID string, userID string) (MemberProjection, bool, error)
}

type EventProjection struct {
	EventID  string
	Title    string
	Location string
}

// EventDirectory reads event metadata and performs the single write the poll
// lifecycle is allowed on events: setting the location when a poll resolves.
type EventDirectory interface {
	GetEvent(ctx context.Context, eventID string) (EventProjection, error)
	UpdateLocation(ctx context.Context, eventID string, location string, updatedAt time.Time) error
}

// IdentityVerifier checks that a user id resolves to an active identity.
// Implementations distinguish inactive identities from transport failures and
// deadline expiry through the module sentinel errors.
type IdentityVerifier interface {
	VerifyActive(ctx context.Context, userID string) error
}

// EventEnvelope aliases the canonical contract envelope so application code
// never constructs a shape the broker contract does not know.
type EventEnvelope = contractsv1.Envelope

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, event EventEnvelope) error
}

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	Status       string
	CreatedAt    time.Time
	PublishedAt  *time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
