package billing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asadtechlead/precise-price-print/internal/model"
)

// ItemField names the line-item field a change applies to.
type ItemField string

const (
	FieldQuantity    ItemField = "quantity"
	FieldRate        ItemField = "rate"
	FieldProduct     ItemField = "product_id"
	FieldService     ItemField = "service_id"
	FieldDescription ItemField = "description"
)

// ItemChange is a single edit to a line item.
type ItemChange struct {
	Field     ItemField
	Number    decimal.Decimal // quantity/rate changes
	Reference uuid.UUID       // product/service selection
	Text      string          // description changes
}

func QuantityChange(q decimal.Decimal) ItemChange {
	return ItemChange{Field: FieldQuantity, Number: q}
}

func RateChange(r decimal.Decimal) ItemChange {
	return ItemChange{Field: FieldRate, Number: r}
}

func ProductChange(id uuid.UUID) ItemChange {
	return ItemChange{Field: FieldProduct, Reference: id}
}

func ServiceChange(id uuid.UUID) ItemChange {
	return ItemChange{Field: FieldService, Reference: id}
}

func DescriptionChange(text string) ItemChange {
	return ItemChange{Field: FieldDescription, Text: text}
}

// Catalog resolves product/service references for line-item edits.
type Catalog struct {
	products map[uuid.UUID]model.Product
	services map[uuid.UUID]model.Service
}

func NewCatalog(products []model.Product, services []model.Service) Catalog {
	c := Catalog{
		products: make(map[uuid.UUID]model.Product, len(products)),
		services: make(map[uuid.UUID]model.Service, len(services)),
	}
	for _, p := range products {
		c.products[p.ID] = p
	}
	for _, s := range services {
		c.services[s.ID] = s
	}
	return c
}

// NewItem returns a fresh line item with the form defaults: quantity 1,
// rate 0, amount 0.
func NewItem() model.InvoiceItem {
	return model.InvoiceItem{
		Type:     model.ItemTypeProduct,
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.Zero,
		Amount:   decimal.Zero,
	}
}

// UpdateItem applies one change to a line item and returns the updated item
// with its derived amount recomputed. Negative quantity/rate is rejected with
// ErrInvalidInput. A product/service reference that resolves to nothing
// leaves the item unchanged.
func (c Catalog) UpdateItem(item model.InvoiceItem, change ItemChange) (model.InvoiceItem, error) {
	switch change.Field {
	case FieldQuantity:
		if change.Number.IsNegative() {
			return item, fmt.Errorf("quantity must not be negative: %w", ErrInvalidInput)
		}
		item.Quantity = change.Number

	case FieldRate:
		if change.Number.IsNegative() {
			return item, fmt.Errorf("rate must not be negative: %w", ErrInvalidInput)
		}
		item.Rate = change.Number

	case FieldProduct:
		p, ok := c.products[change.Reference]
		if !ok {
			return item, nil
		}
		id := p.ID
		item.Type = model.ItemTypeProduct
		item.ProductID = &id
		item.ServiceID = nil
		item.Description = p.Name
		item.Rate = p.Price

	case FieldService:
		s, ok := c.services[change.Reference]
		if !ok {
			return item, nil
		}
		id := s.ID
		item.Type = model.ItemTypeService
		item.ServiceID = &id
		item.ProductID = nil
		item.Description = s.Name
		item.Rate = s.HourlyRate

	case FieldDescription:
		item.Description = change.Text
		return item, nil

	default:
		return item, fmt.Errorf("unknown item field %q: %w", change.Field, ErrInvalidInput)
	}

	item.Amount = Round2(item.Quantity.Mul(item.Rate))
	return item, nil
}
