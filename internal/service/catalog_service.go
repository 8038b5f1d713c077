package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asadtechlead/precise-price-print/internal/model"
	"github.com/asadtechlead/precise-price-print/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateProductRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Price         string `json:"price" binding:"required"`
	Unit          string `json:"unit"`
	StockQuantity *int   `json:"stock_quantity"`
	TrackStock    bool   `json:"track_stock"`
	Category      string `json:"category"`
}

type UpdateProductRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *string `json:"price"`
	Unit          *string `json:"unit"`
	StockQuantity *int    `json:"stock_quantity"`
	TrackStock    *bool   `json:"track_stock"`
	Category      *string `json:"category"`
}

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	HourlyRate  string `json:"hourly_rate" binding:"required"`
	Category    string `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	HourlyRate  *string `json:"hourly_rate"`
	Category    *string `json:"category"`
}

// --- Interface ---

// CatalogService manages the sellable catalog: products priced per unit and
// services priced per hour.
type CatalogService interface {
	CreateProduct(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, ownerID uuid.UUID, id string) (*model.Product, error)
	ListProducts(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Product, int64, error)
	UpdateProduct(ctx context.Context, ownerID uuid.UUID, id string, req UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, ownerID uuid.UUID, id string) error

	CreateService(ctx context.Context, ownerID uuid.UUID, req CreateServiceRequest) (*model.Service, error)
	GetService(ctx context.Context, ownerID uuid.UUID, id string) (*model.Service, error)
	ListServices(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Service, int64, error)
	UpdateService(ctx context.Context, ownerID uuid.UUID, id string, req UpdateServiceRequest) (*model.Service, error)
	DeleteService(ctx context.Context, ownerID uuid.UUID, id string) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Products ---

func (s *catalogService) CreateProduct(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*model.Product, error) {
	price, err := parseNonNegative(req.Price, "price")
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		UserID:        ownerID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         price,
		Unit:          req.Unit,
		StockQuantity: req.StockQuantity,
		TrackStock:    req.TrackStock,
		Category:      req.Category,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.productRepo.Create(txCtx, product); createErr != nil {
			return fmt.Errorf("failed to create product: %w", createErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionCreateProduct, product.ID.String(), product.Name)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetProduct(ctx context.Context, ownerID uuid.UUID, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	return s.productRepo.FindByID(ctx, ownerID, productID)
}

func (s *catalogService) ListProducts(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Product, int64, error) {
	return s.productRepo.List(ctx, ownerID, search, page, limit)
}

func (s *catalogService) UpdateProduct(ctx context.Context, ownerID uuid.UUID, id string, req UpdateProductRequest) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		price, parseErr := parseNonNegative(*req.Price, "price")
		if parseErr != nil {
			return nil, parseErr
		}
		product.Price = price
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.StockQuantity != nil {
		product.StockQuantity = req.StockQuantity
	}
	if req.TrackStock != nil {
		product.TrackStock = *req.TrackStock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.productRepo.Update(txCtx, product); updateErr != nil {
			return fmt.Errorf("failed to update product: %w", updateErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionUpdateProduct, product.ID.String(), product.Name)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, ownerID uuid.UUID, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, ownerID, productID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.productRepo.Delete(txCtx, ownerID, productID); deleteErr != nil {
			return fmt.Errorf("failed to delete product: %w", deleteErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionDeleteProduct, product.ID.String(), product.Name)
	})
}

// --- Services ---

func (s *catalogService) CreateService(ctx context.Context, ownerID uuid.UUID, req CreateServiceRequest) (*model.Service, error) {
	rate, err := parseNonNegative(req.HourlyRate, "hourly_rate")
	if err != nil {
		return nil, err
	}

	svc := &model.Service{
		UserID:      ownerID,
		Name:        req.Name,
		Description: req.Description,
		HourlyRate:  rate,
		Category:    req.Category,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.serviceRepo.Create(txCtx, svc); createErr != nil {
			return fmt.Errorf("failed to create service: %w", createErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionCreateService, svc.ID.String(), svc.Name)
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) GetService(ctx context.Context, ownerID uuid.UUID, id string) (*model.Service, error) {
	serviceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid service id: %w", err)
	}
	return s.serviceRepo.FindByID(ctx, ownerID, serviceID)
}

func (s *catalogService) ListServices(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Service, int64, error) {
	return s.serviceRepo.List(ctx, ownerID, search, page, limit)
}

func (s *catalogService) UpdateService(ctx context.Context, ownerID uuid.UUID, id string, req UpdateServiceRequest) (*model.Service, error) {
	serviceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid service id: %w", err)
	}

	svc, err := s.serviceRepo.FindByID(ctx, ownerID, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.HourlyRate != nil {
		rate, parseErr := parseNonNegative(*req.HourlyRate, "hourly_rate")
		if parseErr != nil {
			return nil, parseErr
		}
		svc.HourlyRate = rate
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.serviceRepo.Update(txCtx, svc); updateErr != nil {
			return fmt.Errorf("failed to update service: %w", updateErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionUpdateService, svc.ID.String(), svc.Name)
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) DeleteService(ctx context.Context, ownerID uuid.UUID, id string) error {
	serviceID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid service id: %w", err)
	}

	svc, err := s.serviceRepo.FindByID(ctx, ownerID, serviceID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.serviceRepo.Delete(txCtx, ownerID, serviceID); deleteErr != nil {
			return fmt.Errorf("failed to delete service: %w", deleteErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionDeleteService, svc.ID.String(), svc.Name)
	})
}

// --- Helpers ---

func parseNonNegative(value, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", field)
	}
	return d, nil
}

func (s *catalogService) writeAudit(ctx context.Context, ownerID uuid.UUID, action, entityID, entityName string) error {
	details, _ := json.Marshal(map[string]interface{}{"name": entityName})
	entry := &model.AuditLog{
		UserID:     ownerID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
