package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asadtechlead/precise-price-print/internal/model"
)

func item(qty, rate string) model.InvoiceItem {
	q := decimal.RequireFromString(qty)
	r := decimal.RequireFromString(rate)
	return model.InvoiceItem{
		Quantity: q,
		Rate:     r,
		Amount:   Round2(q.Mul(r)),
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name          string
		items         []model.InvoiceItem
		taxRate       string
		wantSubtotal  string
		wantTaxAmount string
		wantTotal     string
	}{
		{
			name:          "empty item list",
			items:         nil,
			taxRate:       "10",
			wantSubtotal:  "0",
			wantTaxAmount: "0",
			wantTotal:     "0",
		},
		{
			name:          "two items with ten percent tax",
			items:         []model.InvoiceItem{item("2", "50"), item("1", "25")},
			taxRate:       "10",
			wantSubtotal:  "125",
			wantTaxAmount: "12.5",
			wantTotal:     "137.5",
		},
		{
			name:          "zero tax rate leaves total at subtotal",
			items:         []model.InvoiceItem{item("3", "19.99")},
			taxRate:       "0",
			wantSubtotal:  "59.97",
			wantTaxAmount: "0",
			wantTotal:     "59.97",
		},
		{
			name:          "fractional rates round half away from zero",
			items:         []model.InvoiceItem{item("1", "0.005")},
			taxRate:       "0",
			wantSubtotal:  "0.01",
			wantTaxAmount: "0",
			wantTotal:     "0.01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, decimal.RequireFromString(tt.taxRate))
			assert.True(t, got.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)),
				"subtotal = %s", got.Subtotal)
			assert.True(t, got.TaxAmount.Equal(decimal.RequireFromString(tt.wantTaxAmount)),
				"taxAmount = %s", got.TaxAmount)
			assert.True(t, got.Total.Equal(decimal.RequireFromString(tt.wantTotal)),
				"total = %s", got.Total)
		})
	}
}

// Many small amounts must not drift: decimal accumulation keeps
// total - taxAmount == subtotal exactly.
func TestComputeTotalsNoDrift(t *testing.T) {
	items := make([]model.InvoiceItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, item("1", "0.1"))
	}
	got := ComputeTotals(items, decimal.RequireFromString("7.25"))

	require.True(t, got.Subtotal.Equal(decimal.RequireFromString("100")), "subtotal = %s", got.Subtotal)
	assert.True(t, got.Total.Sub(got.TaxAmount).Equal(got.Subtotal),
		"total - taxAmount = %s, subtotal = %s", got.Total.Sub(got.TaxAmount), got.Subtotal)
}

func TestComputeTotalsIdempotent(t *testing.T) {
	items := []model.InvoiceItem{item("2", "50"), item("1.5", "33.33")}
	rate := decimal.RequireFromString("8.5")

	first := ComputeTotals(items, rate)
	second := ComputeTotals(items, rate)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestValidateTaxRate(t *testing.T) {
	assert.NoError(t, ValidateTaxRate(decimal.Zero))
	assert.NoError(t, ValidateTaxRate(decimal.NewFromInt(100)))
	assert.ErrorIs(t, ValidateTaxRate(decimal.NewFromInt(-1)), ErrInvalidInput)
	assert.ErrorIs(t, ValidateTaxRate(decimal.RequireFromString("100.01")), ErrInvalidInput)
}
