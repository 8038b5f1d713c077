package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateClient  = "CREATE_CLIENT"
	ActionUpdateClient  = "UPDATE_CLIENT"
	ActionDeleteClient  = "DELETE_CLIENT"
	ActionCreateProduct = "CREATE_PRODUCT"
	ActionUpdateProduct = "UPDATE_PRODUCT"
	ActionDeleteProduct = "DELETE_PRODUCT"
	ActionCreateService = "CREATE_SERVICE"
	ActionUpdateService = "UPDATE_SERVICE"
	ActionDeleteService = "DELETE_SERVICE"
	ActionCreateInvoice = "CREATE_INVOICE"
	ActionUpdateInvoice = "UPDATE_INVOICE"
	ActionDeleteInvoice = "DELETE_INVOICE"
	ActionSendInvoice   = "SEND_INVOICE"
	ActionMarkPaid      = "MARK_INVOICE_PAID"
)

// AuditLog tracks Who, What, and When for mutating operations
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string    `gorm:"type:text" json:"details"`                       // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
