package repository

import (
	"context"
	"errors"

	"github.com/asadtechlead/precise-price-print/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	// FindByUserID returns nil (no error) when the user has no settings row yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.UserSettings, error)
	Create(ctx context.Context, settings *model.UserSettings) error
	Update(ctx context.Context, settings *model.UserSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.UserSettings, error) {
	var settings model.UserSettings
	err := GetDB(ctx, r.db).First(&settings, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Create(ctx context.Context, settings *model.UserSettings) error {
	return GetDB(ctx, r.db).Create(settings).Error
}

func (r *settingsRepository) Update(ctx context.Context, settings *model.UserSettings) error {
	return GetDB(ctx, r.db).Save(settings).Error
}
