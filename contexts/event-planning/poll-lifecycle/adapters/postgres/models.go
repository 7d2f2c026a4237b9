package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"gatherly/contexts/event-planning/poll-lifecycle/domain/entities"
	"gatherly/contexts/event-planning/poll-lifecycle/ports"
)

type pollModel struct {
	ID             string     `gorm:"column:id;primaryKey"`
	EventID        string     `gorm:"column:event_id;uniqueIndex:idx_polls_event"`
	Status         string     `gorm:"column:status"`
	ClosesAt       *time.Time `gorm:"column:closes_at"`
	WinnerOptionID *string    `gorm:"column:winner_option_id"`
	CreatedBy      string     `gorm:"column:created_by"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (pollModel) TableName() string {
	return "polls"
}

func pollModelFromEntity(poll entities.Poll) *pollModel {
	row := &pollModel{
		ID:        strings.TrimSpace(poll.PollID),
		EventID:   strings.TrimSpace(poll.EventID),
		Status:    string(poll.Status),
		ClosesAt:  normalizeOptionalTime(poll.ClosesAt),
		CreatedBy: strings.TrimSpace(poll.CreatedBy),
		CreatedAt: poll.CreatedAt.UTC(),
		UpdatedAt: poll.UpdatedAt.UTC(),
	}
	if winner := strings.TrimSpace(poll.WinnerOptionID); winner != "" {
		row.WinnerOptionID = &winner
	}
	return row
}

func (m pollModel) toEntity() entities.Poll {
	winner := ""
	if m.WinnerOptionID != nil {
		winner = strings.TrimSpace(*m.WinnerOptionID)
	}
	return entities.Poll{
		PollID:         m.ID,
		EventID:        m.EventID,
		Status:         entities.PollStatus(m.Status),
		ClosesAt:       normalizeOptionalTime(m.ClosesAt),
		WinnerOptionID: winner,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type pollOptionModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	PollID    string    `gorm:"column:poll_id;index"`
	Label     string    `gorm:"column:label"`
	Position  int       `gorm:"column:position"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (pollOptionModel) TableName() string {
	return "poll_options"
}

func optionModelFromEntity(option entities.PollOption) pollOptionModel {
	return pollOptionModel{
		ID:        strings.TrimSpace(option.OptionID),
		PollID:    strings.TrimSpace(option.PollID),
		Label:     strings.TrimSpace(option.Label),
		Position:  option.Position,
		CreatedAt: option.CreatedAt.UTC(),
	}
}

func (m pollOptionModel) toEntity() entities.PollOption {
	return entities.PollOption{
		OptionID:  m.ID,
		PollID:    m.PollID,
		Label:     m.Label,
		Position:  m.Position,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type voteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	PollID    string    `gorm:"column:poll_id;uniqueIndex:idx_votes_poll_voter"`
	OptionID  string    `gorm:"column:option_id;index"`
	VoterID   string    `gorm:"column:voter_id;uniqueIndex:idx_votes_poll_voter"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "poll_votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		ID:        strings.TrimSpace(vote.VoteID),
		PollID:    strings.TrimSpace(vote.PollID),
		OptionID:  strings.TrimSpace(vote.OptionID),
		VoterID:   strings.TrimSpace(vote.VoterID),
		CreatedAt: vote.CreatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "poll_outbox"
}

func (m outboxModel) toMessage() ports.OutboxMessage {
	return ports.OutboxMessage{
		OutboxID:     m.OutboxID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      append([]byte(nil), m.Payload...),
		Status:       m.Status,
		CreatedAt:    m.CreatedAt.UTC(),
		PublishedAt:  normalizeOptionalTime(m.PublishedAt),
	}
}

type memberProjectionModel struct {
	EventID string `gorm:"column:event_id;primaryKey"`
	UserID  string `gorm:"column:user_id;primaryKey"`
	Status  string `gorm:"column:status"`
}

func (memberProjectionModel) TableName() string {
	return "event_members"
}

type eventProjectionModel struct {
	ID       string  `gorm:"column:id;primaryKey"`
	Title    string  `gorm:"column:title"`
	Location *string `gorm:"column:location"`
}

func (eventProjectionModel) TableName() string {
	return "events"
}

func encodeEnvelope(event ports.EventEnvelope) ([]byte, error) {
	return json.Marshal(event)
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
