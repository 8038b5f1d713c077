package repository

import (
	"context"

	"github.com/asadtechlead/precise-price-print/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Product, int64, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	Update(ctx context.Context, service *model.Service) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Service, int64, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Service, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&model.Product{}).Error
}

func (r *productRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).
		First(&product, "user_id = ? AND id = ?", ownerID, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db)
	filter := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", ownerID)
		if search != "" {
			like := "%" + search + "%"
			q = q.Where("name LIKE ? OR category LIKE ?", like, like)
		}
		return q
	}

	if err := filter(db.Model(&model.Product{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := filter(db.Model(&model.Product{})).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	if err := GetDB(ctx, r.db).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	return GetDB(ctx, r.db).Create(service).Error
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	return GetDB(ctx, r.db).Save(service).Error
}

func (r *serviceRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&model.Service{}).Error
}

func (r *serviceRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Service, error) {
	var service model.Service
	if err := GetDB(ctx, r.db).
		First(&service, "user_id = ? AND id = ?", ownerID, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Service, int64, error) {
	var services []model.Service
	var total int64

	db := GetDB(ctx, r.db)
	filter := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", ownerID)
		if search != "" {
			like := "%" + search + "%"
			q = q.Where("name LIKE ? OR category LIKE ?", like, like)
		}
		return q
	}

	if err := filter(db.Model(&model.Service{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := filter(db.Model(&model.Service{})).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&services).Error; err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *serviceRepository) ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Service, error) {
	var services []model.Service
	if err := GetDB(ctx, r.db).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}
