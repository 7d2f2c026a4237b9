package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gatherly/contexts/event-planning/poll-lifecycle/domain/entities"
	domainerrors "gatherly/contexts/event-planning/poll-lifecycle/domain/errors"
	"gatherly/contexts/event-planning/poll-lifecycle/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreatePoll(ctx context.Context, poll entities.Poll, options []entities.PollOption) error {
	rows := make([]pollOptionModel, 0, len(options))
	for _, option := range options {
		rows = append(rows, optionModelFromEntity(option))
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pollModelFromEntity(poll)).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			// polls carries a unique index on event_id: one poll per event.
			return domainerrors.ErrPollAlreadyExists
		}
		return r.logError("poll_repo_create_poll_failed", err,
			"poll_id", strings.TrimSpace(poll.PollID),
			"event_id", strings.TrimSpace(poll.EventID),
		)
	}
	return nil
}

func (r *Repository) GetPollByEvent(ctx context.Context, eventID string) (entities.Poll, error) {
	var row pollModel
	err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Poll{}, domainerrors.ErrPollNotFound
		}
		return entities.Poll{}, r.logError("poll_repo_get_poll_failed", err, "event_id", strings.TrimSpace(eventID))
	}
	return row.toEntity(), nil
}

func (r *Repository) ListOptions(ctx context.Context, pollID string) ([]entities.PollOption, error) {
	var rows []pollOptionModel
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Order("position ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_options_failed", err, "poll_id", strings.TrimSpace(pollID))
	}
	options := make([]entities.PollOption, 0, len(rows))
	for _, row := range rows {
		options = append(options, row.toEntity())
	}
	return options, nil
}

func (r *Repository) GetOption(ctx context.Context, optionID string) (entities.PollOption, error) {
	var row pollOptionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(optionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PollOption{}, domainerrors.ErrOptionNotFound
		}
		return entities.PollOption{}, r.logError("poll_repo_get_option_failed", err, "option_id", strings.TrimSpace(optionID))
	}
	return row.toEntity(), nil
}

func (r *Repository) AddOption(ctx context.Context, option entities.PollOption) error {
	row := optionModelFromEntity(option)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("poll_repo_add_option_failed", err,
			"option_id", strings.TrimSpace(option.OptionID),
			"poll_id", strings.TrimSpace(option.PollID),
		)
	}
	return nil
}

func (r *Repository) ClosePoll(ctx context.Context, pollID string, winnerOptionID string, closedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&pollModel{}).
		Where("id = ?", strings.TrimSpace(pollID)).
		Where("status = ?", string(entities.PollStatusOpen)).
		Updates(map[string]any{
			"status":           string(entities.PollStatusClosed),
			"winner_option_id": strings.TrimSpace(winnerOptionID),
			"updated_at":       closedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("poll_repo_close_poll_failed", result.Error, "poll_id", strings.TrimSpace(pollID))
	}
	if result.RowsAffected == 0 {
		// Either missing or already closed; the use case resolves which before
		// calling, so a lost race here means another closer won.
		return domainerrors.ErrWinnerFrozen
	}
	return nil
}

func (r *Repository) AppendVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	// poll_votes carries a unique index on (poll_id, voter_id). DoNothing
	// plus the affected-row count resolves a concurrent double submit to the
	// duplicate sentinel without round-tripping a constraint error.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "poll_id"}, {Name: "voter_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return r.logError("poll_repo_append_vote_failed", result.Error,
			"vote_id", strings.TrimSpace(vote.VoteID),
			"poll_id", strings.TrimSpace(vote.PollID),
			"voter_id", strings.TrimSpace(vote.VoterID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDuplicateVote
	}
	return nil
}

func (r *Repository) CountVotesByOption(ctx context.Context, pollID string) (map[string]int, error) {
	type tallyRow struct {
		OptionID string `gorm:"column:option_id"`
		Tally    int    `gorm:"column:tally"`
	}
	var rows []tallyRow
	err := r.db.WithContext(ctx).Model(&voteModel{}).
		Select("option_id, COUNT(*) AS tally").
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Group("option_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("poll_repo_count_votes_failed", err, "poll_id", strings.TrimSpace(pollID))
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.OptionID] = row.Tally
	}
	return counts, nil
}

func (r *Repository) GetMember(ctx context.Context, eventID string, userID string) (ports.MemberProjection, bool, error) {
	var row memberProjectionModel
	err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MemberProjection{}, false, nil
		}
		return ports.MemberProjection{}, false, r.logError("poll_repo_get_member_failed", err,
			"event_id", strings.TrimSpace(eventID),
			"user_id", strings.TrimSpace(userID),
		)
	}
	return ports.MemberProjection{
		EventID: row.EventID,
		UserID:  row.UserID,
		Status:  ports.MembershipStatus(row.Status),
	}, true, nil
}

func (r *Repository) GetEvent(ctx context.Context, eventID string) (ports.EventProjection, error) {
	var row eventProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(eventID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EventProjection{}, domainerrors.ErrEventNotFound
		}
		return ports.EventProjection{}, r.logError("poll_repo_get_event_failed", err, "event_id", strings.TrimSpace(eventID))
	}
	location := ""
	if row.Location != nil {
		location = *row.Location
	}
	return ports.EventProjection{
		EventID:  row.ID,
		Title:    row.Title,
		Location: location,
	}, nil
}

func (r *Repository) UpdateLocation(ctx context.Context, eventID string, location string, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&eventProjectionModel{}).
		Where("id = ?", strings.TrimSpace(eventID)).
		Updates(map[string]any{
			"location":   strings.TrimSpace(location),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("poll_repo_update_location_failed", result.Error, "event_id", strings.TrimSpace(eventID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEventNotFound
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, event ports.EventEnvelope) error {
	payload, err := encodeEnvelope(event)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     uuid.NewString(),
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    event.OccurredAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("poll_repo_append_outbox_failed", err,
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_outbox_failed", err)
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, row.toMessage())
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	stamp := publishedAt.UTC()
	err := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &stamp,
		}).
		Error
	if err != nil {
		return r.logError("poll_repo_mark_outbox_failed", err, "outbox_id", strings.TrimSpace(outboxID))
	}
	return nil
}

// AutoMigrate creates the poll-lifecycle owned tables. Projection tables
// (events, event_members) belong to their owning services.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&pollModel{}, &pollOptionModel{}, &voteModel{}, &outboxModel{})
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "event-planning/poll-lifecycle",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("poll repository operation failed", fields...)
	return err
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.PollRepository = (*Repository)(nil)
var _ ports.VoteLedger = (*Repository)(nil)
var _ ports.MembershipReader = (*Repository)(nil)
var _ ports.EventDirectory = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
