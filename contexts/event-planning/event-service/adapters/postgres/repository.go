package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gatherly/contexts/event-planning/event-service/domain/entities"
	domainerrors "gatherly/contexts/event-planning/event-service/domain/errors"
	"gatherly/contexts/event-planning/event-service/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) SaveEvent(ctx context.Context, event entities.Event) error {
	row := eventModelFromEntity(event)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"title":      row.Title,
			"location":   row.Location,
			"starts_at":  row.StartsAt,
			"ends_at":    row.EndsAt,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		r.logger.Error("event repository save failed",
			"event", "event_repo_save_failed",
			"module", "event-planning/event-service",
			"layer", "adapter",
			"event_id", strings.TrimSpace(event.EventID),
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (r *Repository) GetEvent(ctx context.Context, eventID string) (entities.Event, error) {
	var row eventModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(eventID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Event{}, domainerrors.ErrEventNotFound
		}
		r.logger.Error("event repository get failed",
			"event", "event_repo_get_failed",
			"module", "event-planning/event-service",
			"layer", "adapter",
			"event_id", strings.TrimSpace(eventID),
			"error", err.Error(),
		)
		return entities.Event{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&eventModel{})
}

type eventModel struct {
	ID        string     `gorm:"column:id;primaryKey"`
	Title     string     `gorm:"column:title"`
	Location  *string    `gorm:"column:location"`
	StartsAt  *time.Time `gorm:"column:starts_at"`
	EndsAt    *time.Time `gorm:"column:ends_at"`
	CreatedBy string     `gorm:"column:created_by"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (eventModel) TableName() string {
	return "events"
}

func eventModelFromEntity(event entities.Event) eventModel {
	row := eventModel{
		ID:        strings.TrimSpace(event.EventID),
		Title:     strings.TrimSpace(event.Title),
		StartsAt:  normalizeOptionalTime(event.StartsAt),
		EndsAt:    normalizeOptionalTime(event.EndsAt),
		CreatedBy: strings.TrimSpace(event.CreatedBy),
		CreatedAt: event.CreatedAt.UTC(),
		UpdatedAt: event.UpdatedAt.UTC(),
	}
	if location := strings.TrimSpace(event.Location); location != "" {
		row.Location = &location
	}
	return row
}

func (m eventModel) toEntity() entities.Event {
	location := ""
	if m.Location != nil {
		location = strings.TrimSpace(*m.Location)
	}
	return entities.Event{
		EventID:   m.ID,
		Title:     m.Title,
		Location:  location,
		StartsAt:  normalizeOptionalTime(m.StartsAt),
		EndsAt:    normalizeOptionalTime(m.EndsAt),
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

var _ ports.Repository = (*Repository)(nil)
