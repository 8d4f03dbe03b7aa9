package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/duracem/nameplate-backend/internal/repo"
	"github.com/duracem/nameplate-backend/pkg/db/models"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CountByRMO returns how many officers are registered under the regional office.
func (r *Repository) CountByRMO(ctx context.Context, rmo string) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.User{}).
		Where("rmo = ?", rmo).
		Count(&count).Error
	return count, err
}

// ListByRMO returns the officers registered under the regional office.
func (r *Repository) ListByRMO(ctx context.Context, rmo string) ([]models.User, error) {
	var officers []models.User
	err := r.DB(ctx).
		Where("rmo = ?", rmo).
		Order("officer_number ASC").
		Find(&officers).Error
	return officers, err
}

// RMOOfficerCount pairs a regional office code with its officer count.
type RMOOfficerCount struct {
	RMO   string `json:"rmo"`
	Count int64  `json:"count"`
}

// GroupByRMO returns distinct regional offices with their officer counts.
func (r *Repository) GroupByRMO(ctx context.Context) ([]RMOOfficerCount, error) {
	var rows []RMOOfficerCount
	err := r.DB(ctx).
		Model(&models.User{}).
		Select("rmo, COUNT(*) AS count").
		Where("rmo <> ''").
		Group("rmo").
		Order("rmo ASC").
		Scan(&rows).Error
	return rows, err
}

// RecordLogin refreshes last_login_at and bumps the login counter.
func (r *Repository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"last_login_at": at,
			"login_count":   gorm.Expr("login_count + 1"),
		}).Error
}
