package repository

import (
	"context"

	"github.com/asadtechlead/precise-price-print/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Client, int64, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Client, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Create(client).Error
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&model.Client{}).Error
}

func (r *clientRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).
		First(&client, "user_id = ? AND id = ?", ownerID, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Client, int64, error) {
	var clients []model.Client
	var total int64

	db := GetDB(ctx, r.db)
	filter := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", ownerID)
		if search != "" {
			like := "%" + search + "%"
			q = q.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
		}
		return q
	}

	if err := filter(db.Model(&model.Client{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := filter(db.Model(&model.Client{})).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *clientRepository) ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Client, error) {
	var clients []model.Client
	if err := GetDB(ctx, r.db).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}
