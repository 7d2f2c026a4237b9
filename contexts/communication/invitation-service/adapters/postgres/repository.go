package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gatherly/contexts/communication/invitation-service/domain/entities"
	domainerrors "gatherly/contexts/communication/invitation-service/domain/errors"
	"gatherly/contexts/communication/invitation-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateMembership(ctx context.Context, membership entities.Membership) error {
	row := membershipModelFromEntity(membership)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyInvited
		}
		return r.logError("invitation_repo_create_failed", err,
			"event_id", strings.TrimSpace(membership.EventID),
			"user_id", strings.TrimSpace(membership.UserID),
		)
	}
	return nil
}

func (r *Repository) GetMembership(ctx context.Context, eventID string, userID string) (entities.Membership, error) {
	var row membershipModel
	err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Membership{}, domainerrors.ErrInviteNotFound
		}
		return entities.Membership{}, r.logError("invitation_repo_get_failed", err,
			"event_id", strings.TrimSpace(eventID),
			"user_id", strings.TrimSpace(userID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateMembership(ctx context.Context, membership entities.Membership) error {
	result := r.db.WithContext(ctx).Model(&membershipModel{}).
		Where("event_id = ?", strings.TrimSpace(membership.EventID)).
		Where("user_id = ?", strings.TrimSpace(membership.UserID)).
		Updates(map[string]any{
			"status":    string(membership.Status),
			"joined_at": normalizeOptionalTime(membership.JoinedAt),
		})
	if result.Error != nil {
		return r.logError("invitation_repo_update_failed", result.Error,
			"event_id", strings.TrimSpace(membership.EventID),
			"user_id", strings.TrimSpace(membership.UserID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInviteNotFound
	}
	return nil
}

func (r *Repository) ListMemberships(ctx context.Context, eventID string) ([]entities.Membership, error) {
	var rows []membershipModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Order("invited_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("invitation_repo_list_failed", err, "event_id", strings.TrimSpace(eventID))
	}
	members := make([]entities.Membership, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.toEntity())
	}
	return members, nil
}

func (r *Repository) GetEvent(ctx context.Context, eventID string) (ports.EventProjection, bool, error) {
	var row eventProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(eventID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EventProjection{}, false, nil
		}
		return ports.EventProjection{}, false, r.logError("invitation_repo_get_event_failed", err,
			"event_id", strings.TrimSpace(eventID),
		)
	}
	return ports.EventProjection{EventID: row.ID, Title: row.Title}, true, nil
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&membershipModel{})
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "communication/invitation-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("invitation repository operation failed", fields...)
	return err
}

type membershipModel struct {
	EventID   string     `gorm:"column:event_id;primaryKey"`
	UserID    string     `gorm:"column:user_id;primaryKey"`
	Status    string     `gorm:"column:status"`
	InvitedBy string     `gorm:"column:invited_by"`
	InvitedAt time.Time  `gorm:"column:invited_at"`
	JoinedAt  *time.Time `gorm:"column:joined_at"`
}

func (membershipModel) TableName() string {
	return "event_members"
}

func membershipModelFromEntity(membership entities.Membership) membershipModel {
	return membershipModel{
		EventID:   strings.TrimSpace(membership.EventID),
		UserID:    strings.TrimSpace(membership.UserID),
		Status:    string(membership.Status),
		InvitedBy: strings.TrimSpace(membership.InvitedBy),
		InvitedAt: membership.InvitedAt.UTC(),
		JoinedAt:  normalizeOptionalTime(membership.JoinedAt),
	}
}

func (m membershipModel) toEntity() entities.Membership {
	return entities.Membership{
		EventID:   m.EventID,
		UserID:    m.UserID,
		Status:    entities.MembershipStatus(m.Status),
		InvitedBy: m.InvitedBy,
		InvitedAt: m.InvitedAt.UTC(),
		JoinedAt:  normalizeOptionalTime(m.JoinedAt),
	}
}

type eventProjectionModel struct {
	ID    string `gorm:"column:id;primaryKey"`
	Title string `gorm:"column:title"`
}

func (eventProjectionModel) TableName() string {
	return "events"
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.EventReader = (*Repository)(nil)
