package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client is a billable customer. Invoices hold a non-owning reference to
// exactly one client via ClientID.
type Client struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Email     string          `gorm:"type:varchar(255)" json:"email"`
	Phone     string          `gorm:"type:varchar(50)" json:"phone"`
	Address   string          `gorm:"type:varchar(255)" json:"address"`
	City      string          `gorm:"type:varchar(100)" json:"city"`
	State     string          `gorm:"type:varchar(100)" json:"state"`
	Zip       string          `gorm:"type:varchar(20)" json:"zip"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
