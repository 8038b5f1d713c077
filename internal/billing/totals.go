package billing

import (
	"github.com/shopspring/decimal"

	"github.com/asadtechlead/precise-price-print/internal/model"
)

// Totals are the derived figures of an invoice.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// ComputeTotals sums item amounts into a subtotal and applies a flat tax
// percentage. Accumulation happens in decimal space, each figure is rounded
// to 2 places. An empty item list yields zeros.
//
// Total function: a taxRatePercent outside [0,100] is accepted here and must
// be rejected at the boundary with ValidateTaxRate.
func ComputeTotals(items []model.InvoiceItem, taxRatePercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}
	subtotal = Round2(subtotal)
	taxAmount := Round2(subtotal.Mul(taxRatePercent).Div(hundred))
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     Round2(subtotal.Add(taxAmount)),
	}
}
