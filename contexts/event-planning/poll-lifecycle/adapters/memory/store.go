package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"gatherly/contexts/event-planning/poll-lifecycle/domain/entities"
	domainerrors "gatherly/contexts/event-planning/poll-lifecycle/domain/errors"
	"gatherly/contexts/event-planning/poll-lifecycle/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the map-backed adapter used by tests and local wiring. It covers
// every poll-lifecycle port, including projection setters for the tables
// owned by the event, invitation and identity services.
type Store struct {
	mu sync.RWMutex

	polls   map[string]entities.Poll
	options map[string]entities.PollOption
	votes   map[string]entities.Vote
	outbox  map[string]outboxRecord

	members     map[string]ports.MemberProjection
	events      map[string]ports.EventProjection
	identity    map[string]bool
	identityErr error
}

func NewStore() *Store {
	return &Store{
		polls:    make(map[string]entities.Poll),
		options:  make(map[string]entities.PollOption),
		votes:    make(map[string]entities.Vote),
		outbox:   make(map[string]outboxRecord),
		members:  make(map[string]ports.MemberProjection),
		events:   make(map[string]ports.EventProjection),
		identity: make(map[string]bool),
	}
}

func (s *Store) SetEvent(event ports.EventProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[strings.TrimSpace(event.EventID)] = ports.EventProjection{
		EventID:  strings.TrimSpace(event.EventID),
		Title:    strings.TrimSpace(event.Title),
		Location: strings.TrimSpace(event.Location),
	}
}

func (s *Store) SetMember(member ports.MemberProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[memberKey(member.EventID, member.UserID)] = ports.MemberProjection{
		EventID: strings.TrimSpace(member.EventID),
		UserID:  strings.TrimSpace(member.UserID),
		Status:  member.Status,
	}
}

func (s *Store) SetIdentity(userID string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity[strings.TrimSpace(userID)] = active
}

// FailIdentity makes every verification attempt return the given error, for
// simulating an unreachable or timing-out identity service.
func (s *Store) FailIdentity(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identityErr = err
}

func (s *Store) Event(eventID string) (ports.EventProjection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[strings.TrimSpace(eventID)]
	return event, ok
}

func (s *Store) VoteCount(pollID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, vote := range s.votes {
		if vote.PollID == strings.TrimSpace(pollID) {
			count++
		}
	}
	return count
}

func (s *Store) CreatePoll(_ context.Context, poll entities.Poll, options []entities.PollOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.polls {
		if existing.EventID == poll.EventID {
			return domainerrors.ErrPollAlreadyExists
		}
	}
	s.polls[poll.PollID] = poll
	for _, option := range options {
		s.options[option.OptionID] = option
	}
	return nil
}

func (s *Store) GetPollByEvent(_ context.Context, eventID string) (entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, poll := range s.polls {
		if poll.EventID == strings.TrimSpace(eventID) {
			return poll, nil
		}
	}
	return entities.Poll{}, domainerrors.ErrPollNotFound
}

func (s *Store) ListOptions(_ context.Context, pollID string) ([]entities.PollOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	options := make([]entities.PollOption, 0)
	for _, option := range s.options {
		if option.PollID == strings.TrimSpace(pollID) {
			options = append(options, option)
		}
	}
	return options, nil
}

func (s *Store) GetOption(_ context.Context, optionID string) (entities.PollOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	option, ok := s.options[strings.TrimSpace(optionID)]
	if !ok {
		return entities.PollOption{}, domainerrors.ErrOptionNotFound
	}
	return option, nil
}

func (s *Store) AddOption(_ context.Context, option entities.PollOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.polls[option.PollID]; !ok {
		return domainerrors.ErrPollNotFound
	}
	s.options[option.OptionID] = option
	return nil
}

func (s *Store) ClosePoll(_ context.Context, pollID string, winnerOptionID string, closedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[strings.TrimSpace(pollID)]
	if !ok {
		return domainerrors.ErrPollNotFound
	}
	poll.Status = entities.PollStatusClosed
	poll.WinnerOptionID = strings.TrimSpace(winnerOptionID)
	poll.UpdatedAt = closedAt.UTC()
	s.polls[poll.PollID] = poll
	return nil
}

func (s *Store) AppendVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.votes {
		if existing.PollID == vote.PollID && existing.VoterID == vote.VoterID {
			return domainerrors.ErrDuplicateVote
		}
	}
	s.votes[vote.VoteID] = vote
	return nil
}

func (s *Store) CountVotesByOption(_ context.Context, pollID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, vote := range s.votes {
		if vote.PollID == strings.TrimSpace(pollID) {
			counts[vote.OptionID]++
		}
	}
	return counts, nil
}

func (s *Store) GetMember(_ context.Context, eventID string, userID string) (ports.MemberProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[memberKey(eventID, userID)]
	return member, ok, nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (ports.EventProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[strings.TrimSpace(eventID)]
	if !ok {
		return ports.EventProjection{}, domainerrors.ErrEventNotFound
	}
	return event, nil
}

func (s *Store) UpdateLocation(_ context.Context, eventID string, location string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[strings.TrimSpace(eventID)]
	if !ok {
		return domainerrors.ErrEventNotFound
	}
	event.Location = strings.TrimSpace(location)
	s.events[event.EventID] = event
	return nil
}

func (s *Store) VerifyActive(_ context.Context, userID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identityErr != nil {
		return s.identityErr
	}
	active, ok := s.identity[strings.TrimSpace(userID)]
	if !ok || !active {
		return domainerrors.ErrOrganizerInactive
	}
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	message := ports.OutboxMessage{
		OutboxID:     uuid.NewString(),
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		Status:       "pending",
		CreatedAt:    event.OccurredAt.UTC(),
	}
	s.outbox[message.OutboxID] = outboxRecord{message: message}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if record.published {
			continue
		}
		pending = append(pending, record.message)
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return nil
	}
	record.published = true
	stamp := publishedAt.UTC()
	record.message.Status = "published"
	record.message.PublishedAt = &stamp
	s.outbox[record.message.OutboxID] = record
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func memberKey(eventID string, userID string) string {
	return strings.TrimSpace(eventID) + "/" + strings.TrimSpace(userID)
}

var _ ports.PollRepository = (*Store)(nil)
var _ ports.VoteLedger = (*Store)(nil)
var _ ports.MembershipReader = (*Store)(nil)
var _ ports.EventDirectory = (*Store)(nil)
var _ ports.IdentityVerifier = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
