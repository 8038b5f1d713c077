package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserSettings holds per-owner invoicing preferences. One row per user,
// the app operates with a single currency selection at a time.
type UserSettings struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CompanyName    string          `gorm:"type:varchar(255)" json:"company_name"`
	CompanyAddress string          `gorm:"type:varchar(255)" json:"company_address"`
	CompanyEmail   string          `gorm:"type:varchar(255)" json:"company_email"`
	CompanyPhone   string          `gorm:"type:varchar(50)" json:"company_phone"`
	CurrencyCode   string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency_code"`
	CurrencySymbol string          `gorm:"type:varchar(5);not null;default:'$'" json:"currency_symbol"`
	DefaultTaxRate decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0" json:"default_tax_rate"`
	DefaultDueDays int             `gorm:"not null;default:30" json:"default_due_days"`
	InvoicePrefix  string          `gorm:"type:varchar(10);not null;default:'INV'" json:"invoice_prefix"`
	PaymentTerms   string          `gorm:"type:text" json:"payment_terms"`
	FooterText     string          `gorm:"type:text" json:"footer_text"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
