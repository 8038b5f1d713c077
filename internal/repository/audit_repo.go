package repository

import (
	"context"

	"github.com/asadtechlead/precise-price-print/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, ownerID uuid.UUID, action string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, ownerID uuid.UUID, action string, page, limit int) ([]model.AuditLog, int64, error) {
	var entries []model.AuditLog
	var total int64

	db := GetDB(ctx, r.db)
	where := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", ownerID)
		if action != "" {
			q = q.Where("action = ?", action)
		}
		return q
	}

	if err := where(db.Model(&model.AuditLog{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := where(db.Model(&model.AuditLog{})).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
