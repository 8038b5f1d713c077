package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable good with a unit price. Selecting a product on an
// invoice line copies Name and Price onto the line.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"price"`
	Unit          string          `gorm:"type:varchar(50)" json:"unit"`
	StockQuantity *int            `json:"stock_quantity,omitempty"`
	TrackStock    bool            `gorm:"default:false" json:"track_stock"`
	Category      string          `gorm:"type:varchar(100)" json:"category"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Service is billable work charged by the hour. Selecting a service on an
// invoice line copies Name and HourlyRate onto the line; the line quantity
// is read as hours.
type Service struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	HourlyRate  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"hourly_rate"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
