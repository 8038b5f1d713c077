package repository

import (
	"context"

	"github.com/asadtechlead/precise-price-print/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceListFilter narrows the invoice list query.
type InvoiceListFilter struct {
	Status string // draft, sent, paid, overdue or empty for all
	Search string // partial match on invoice_number
	Page   int
	Limit  int
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, ownerID uuid.UUID, filter InvoiceListFilter) ([]model.Invoice, int64, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Invoice, error)
	ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []model.InvoiceItem) error
	CountByPrefix(ctx context.Context, ownerID uuid.UUID, prefix string) (int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	// items are created in the same insert through the association
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Omit("Items", "Client").Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&model.Invoice{}).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).
		Preload("Items").Preload("Client").
		First(&invoice, "user_id = ? AND id = ?", ownerID, id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, ownerID uuid.UUID, filter InvoiceListFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	db := GetDB(ctx, r.db)
	where := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", ownerID)
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.Search != "" {
			q = q.Where("invoice_number LIKE ?", "%"+filter.Search+"%")
		}
		return q
	}

	if err := where(db.Model(&model.Invoice{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := where(db.Model(&model.Invoice{})).
		Preload("Items").Preload("Client").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).
		Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// ListAll loads the owner's entire invoice collection with items, the
// snapshot the reporting aggregator runs over.
func (r *invoiceRepository) ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// ReplaceItems swaps an invoice's line items wholesale (delete-all +
// re-create). Run inside a transaction.
func (r *invoiceRepository) ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []model.InvoiceItem) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("invoice_id = ?", invoiceID).Delete(&model.InvoiceItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].InvoiceID = invoiceID
	}
	return db.Create(&items).Error
}

func (r *invoiceRepository) CountByPrefix(ctx context.Context, ownerID uuid.UUID, prefix string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Where("user_id = ? AND invoice_number LIKE ?", ownerID, prefix+"%").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
