package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gatherly/contexts/identity-access/identity-service/domain/entities"
	domainerrors "gatherly/contexts/identity-access/identity-service/domain/errors"
	"gatherly/contexts/identity-access/identity-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
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

func (r *Repository) SaveUser(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"display_name": row.DisplayName,
			"active":       row.Active,
			"updated_at":   row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateUser
		}
		r.logger.Error("user repository save failed",
			"event", "user_repo_save_failed",
			"module", "identity-access/identity-service",
			"layer", "adapter",
			"user_id", strings.TrimSpace(user.UserID),
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		r.logger.Error("user repository get failed",
			"event", "user_repo_get_failed",
			"module", "identity-access/identity-service",
			"layer", "adapter",
			"user_id", strings.TrimSpace(userID),
			"error", err.Error(),
		)
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&userModel{})
}

type userModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	DisplayName string    `gorm:"column:display_name"`
	Email       string    `gorm:"column:email;uniqueIndex:idx_users_email"`
	Active      bool      `gorm:"column:active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(user entities.User) userModel {
	return userModel{
		ID:          strings.TrimSpace(user.UserID),
		DisplayName: strings.TrimSpace(user.DisplayName),
		Email:       strings.ToLower(strings.TrimSpace(user.Email)),
		Active:      user.Active,
		CreatedAt:   user.CreatedAt.UTC(),
		UpdatedAt:   user.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		UserID:      m.ID,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
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

var _ ports.Repository = (*Repository)(nil)
