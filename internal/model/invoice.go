package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus enum constants
const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// InvoiceItem type enum constants
const (
	ItemTypeProduct = "product"
	ItemTypeService = "service"
)

// InvoiceItem is one line of an invoice. Amount is derived:
// amount = round2(quantity * rate) after any field change.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Type        string          `gorm:"type:varchar(10);not null;default:'product'" json:"type"` // product, service
	ProductID   *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ServiceID   *uuid.UUID      `gorm:"type:uuid;index" json:"service_id,omitempty"`
	Description string          `gorm:"type:text" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amount"`
}

// Invoice is a billing document. It exclusively owns its items.
// Subtotal, TaxAmount and Total are always recomputed server-side from the
// items and TaxRate; client-supplied values are ignored.
type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	InvoiceNumber string          `gorm:"type:varchar(40);not null;index" json:"invoice_number"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client        *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"subtotal"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0" json:"tax_rate"` // flat percentage, 0..100
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_amount"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total"`
	Status        string          `gorm:"type:varchar(10);not null;default:'draft';index" json:"status"`
	DueDate       time.Time       `gorm:"type:date" json:"due_date"`
	Notes         string          `gorm:"type:text" json:"notes"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"` // set only on the transition to paid
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// ValidStatus reports whether s is one of the four invoice statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}
