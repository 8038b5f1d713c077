// Package pdf renders an invoice as a printable A4 document.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/asadtechlead/precise-price-print/internal/model"
)

// RenderInvoice produces the PDF bytes for one invoice.
func RenderInvoice(inv model.Invoice, client model.Client, settings model.UserSettings) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.AddPage()

	// Header
	doc.SetFont("Arial", "B", 20)
	company := settings.CompanyName
	if company == "" {
		company = "Invoice"
	}
	doc.Cell(120, 10, company)
	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 5, "Invoice No: "+inv.InvoiceNumber, "", 1, "R", false, 0, "")
	doc.CellFormat(0, 5, "Date: "+inv.CreatedAt.Format("2006-01-02"), "", 1, "R", false, 0, "")
	doc.CellFormat(0, 5, "Due: "+inv.DueDate.Format("2006-01-02"), "", 1, "R", false, 0, "")
	doc.Ln(6)

	// Bill to
	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(0, 6, "Bill To", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 5, client.Name, "", 1, "L", false, 0, "")
	if client.Address != "" {
		doc.CellFormat(0, 5, client.Address, "", 1, "L", false, 0, "")
	}
	if client.City != "" {
		doc.CellFormat(0, 5, fmt.Sprintf("%s, %s %s", client.City, client.State, client.Zip), "", 1, "L", false, 0, "")
	}
	if client.Email != "" {
		doc.CellFormat(0, 5, client.Email, "", 1, "L", false, 0, "")
	}
	doc.Ln(8)

	// Items table
	symbol := settings.CurrencySymbol
	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(240, 240, 240)
	doc.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(30, 8, "Rate", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	doc.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		doc.CellFormat(90, 7, item.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, item.Quantity.String(), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 7, money(symbol, item.Rate), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, money(symbol, item.Amount), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)

	// Totals block
	totalsRow := func(label, value string, bold bool) {
		if bold {
			doc.SetFont("Arial", "B", 11)
		} else {
			doc.SetFont("Arial", "", 10)
		}
		doc.CellFormat(115, 7, "", "", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, label, "", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, value, "", 1, "R", false, 0, "")
	}
	totalsRow("Subtotal", money(symbol, inv.Subtotal), false)
	totalsRow(fmt.Sprintf("Tax (%s%%)", inv.TaxRate.String()), money(symbol, inv.TaxAmount), false)
	totalsRow("Total", money(symbol, inv.Total), true)

	if inv.Notes != "" {
		doc.Ln(8)
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		doc.SetFont("Arial", "", 10)
		doc.MultiCell(0, 5, inv.Notes, "", "L", false)
	}

	if settings.FooterText != "" {
		doc.Ln(10)
		doc.SetFont("Arial", "I", 9)
		doc.MultiCell(0, 5, settings.FooterText, "", "C", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}
