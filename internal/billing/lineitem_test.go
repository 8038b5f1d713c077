package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asadtechlead/precise-price-print/internal/model"
)

func testCatalog() (Catalog, model.Product, model.Service) {
	product := model.Product{
		ID:    uuid.New(),
		Name:  "Widget",
		Price: decimal.NewFromInt(75),
	}
	service := model.Service{
		ID:         uuid.New(),
		Name:       "Consulting",
		HourlyRate: decimal.RequireFromString("120.50"),
	}
	return NewCatalog([]model.Product{product}, []model.Service{service}), product, service
}

func TestUpdateItemQuantityAndRate(t *testing.T) {
	catalog, _, _ := testCatalog()

	item := NewItem()
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, item.Amount.IsZero())

	item, err := catalog.UpdateItem(item, RateChange(decimal.RequireFromString("19.99")))
	require.NoError(t, err)
	assert.True(t, item.Amount.Equal(decimal.RequireFromString("19.99")), "amount = %s", item.Amount)

	item, err = catalog.UpdateItem(item, QuantityChange(decimal.NewFromInt(3)))
	require.NoError(t, err)
	assert.True(t, item.Amount.Equal(decimal.RequireFromString("59.97")), "amount = %s", item.Amount)

	// zero is a legal quantity
	item, err = catalog.UpdateItem(item, QuantityChange(decimal.Zero))
	require.NoError(t, err)
	assert.True(t, item.Amount.IsZero())
}

func TestUpdateItemRejectsNegativeInput(t *testing.T) {
	catalog, _, _ := testCatalog()
	item := NewItem()

	_, err := catalog.UpdateItem(item, QuantityChange(decimal.NewFromInt(-1)))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = catalog.UpdateItem(item, RateChange(decimal.RequireFromString("-0.01")))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateItemProductSelection(t *testing.T) {
	catalog, product, _ := testCatalog()

	item := NewItem()
	item, err := catalog.UpdateItem(item, QuantityChange(decimal.NewFromInt(3)))
	require.NoError(t, err)

	item, err = catalog.UpdateItem(item, ProductChange(product.ID))
	require.NoError(t, err)

	assert.Equal(t, model.ItemTypeProduct, item.Type)
	require.NotNil(t, item.ProductID)
	assert.Equal(t, product.ID, *item.ProductID)
	assert.Equal(t, "Widget", item.Description)
	assert.True(t, item.Rate.Equal(decimal.NewFromInt(75)))
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(225)), "amount = %s", item.Amount)
}

func TestUpdateItemServiceSelectionClearsProduct(t *testing.T) {
	catalog, product, service := testCatalog()

	item := NewItem()
	item, err := catalog.UpdateItem(item, ProductChange(product.ID))
	require.NoError(t, err)

	item, err = catalog.UpdateItem(item, ServiceChange(service.ID))
	require.NoError(t, err)

	assert.Equal(t, model.ItemTypeService, item.Type)
	assert.Nil(t, item.ProductID)
	require.NotNil(t, item.ServiceID)
	assert.Equal(t, service.ID, *item.ServiceID)
	assert.Equal(t, "Consulting", item.Description)
	assert.True(t, item.Rate.Equal(decimal.RequireFromString("120.50")))
}

// An unknown reference id is a silent no-op: description and rate stay put.
func TestUpdateItemUnknownReference(t *testing.T) {
	catalog, _, _ := testCatalog()

	item := NewItem()
	item.Description = "manual entry"
	item.Rate = decimal.NewFromInt(10)

	updated, err := catalog.UpdateItem(item, ProductChange(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, item, updated)

	updated, err = catalog.UpdateItem(item, ServiceChange(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, item, updated)
}

func TestUpdateItemDescription(t *testing.T) {
	catalog, _, _ := testCatalog()

	item := NewItem()
	item, err := catalog.UpdateItem(item, DescriptionChange("custom work"))
	require.NoError(t, err)
	assert.Equal(t, "custom work", item.Description)
	assert.True(t, item.Amount.IsZero())
}
