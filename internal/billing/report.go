package billing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asadtechlead/precise-price-print/internal/model"
)

// RankingLimit caps the client and item rankings.
const RankingLimit = 5

// TrendMonths is the length of the trailing revenue series, current month
// included.
const TrendMonths = 6

// Snapshot is the full owner dataset a report is computed from. Reports are
// pure functions of the snapshot: no caching, recomputed on every call.
type Snapshot struct {
	Invoices []model.Invoice
	Clients  []model.Client
	Products []model.Product
	Services []model.Service
}

// DashboardStats aggregates invoice totals by status bucket.
type DashboardStats struct {
	TotalPending      decimal.Decimal `json:"total_pending"` // sent + overdue
	TotalEarned       decimal.Decimal `json:"total_earned"`  // paid
	TotalClients      int             `json:"total_clients"`
	TotalInvoices     int             `json:"total_invoices"`
	OverdueAmount     decimal.Decimal `json:"overdue_amount"`
	ThisMonthEarnings decimal.Decimal `json:"this_month_earnings"`
}

// StatusCount is the invoice count of one status bucket.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// MonthRevenue is one point of the trailing revenue series.
type MonthRevenue struct {
	Month   string          `json:"month"` // short month name, e.g. "Jan"
	Year    int             `json:"year"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ClientRevenue ranks a client by realized (paid) revenue.
type ClientRevenue struct {
	ClientID uuid.UUID       `json:"client_id"`
	Name     string          `json:"name"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ItemPerformance ranks a product or service by quantity and revenue
// accumulated across paid invoices.
type ItemPerformance struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"` // product, service
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Report is the full analytics view. Derived and ephemeral: never persisted.
type Report struct {
	Stats          DashboardStats    `json:"stats"`
	StatusCounts   []StatusCount     `json:"status_counts"`
	MonthlyRevenue []MonthRevenue    `json:"monthly_revenue"`
	TopClients     []ClientRevenue   `json:"top_clients"`
	TopItems       []ItemPerformance `json:"top_items"`
}

// Summarize walks the invoice collection once per concern and buckets totals
// by status and time window, then ranks clients and catalog items by paid
// revenue.
//
// Two deliberate date conventions coexist: ThisMonthEarnings keys on PaidAt
// while the monthly trend series keys on CreatedAt. A paid invoice without a
// PaidAt timestamp counts toward TotalEarned but never ThisMonthEarnings.
func Summarize(snap Snapshot, now time.Time) Report {
	return Report{
		Stats:          computeStats(snap, now),
		StatusCounts:   countStatuses(snap.Invoices),
		MonthlyRevenue: monthlySeries(snap.Invoices, now),
		TopClients:     rankClients(snap, RankingLimit),
		TopItems:       rankItems(snap, RankingLimit),
	}
}

// Stats computes only the dashboard block of the report.
func Stats(snap Snapshot, now time.Time) DashboardStats {
	return computeStats(snap, now)
}

func computeStats(snap Snapshot, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalPending:      decimal.Zero,
		TotalEarned:       decimal.Zero,
		OverdueAmount:     decimal.Zero,
		ThisMonthEarnings: decimal.Zero,
		TotalClients:      len(snap.Clients),
		TotalInvoices:     len(snap.Invoices),
	}

	for _, inv := range snap.Invoices {
		switch inv.Status {
		case model.StatusSent:
			stats.TotalPending = stats.TotalPending.Add(inv.Total)
		case model.StatusOverdue:
			stats.TotalPending = stats.TotalPending.Add(inv.Total)
			stats.OverdueAmount = stats.OverdueAmount.Add(inv.Total)
		case model.StatusPaid:
			stats.TotalEarned = stats.TotalEarned.Add(inv.Total)
			if inv.PaidAt != nil && sameMonth(*inv.PaidAt, now) {
				stats.ThisMonthEarnings = stats.ThisMonthEarnings.Add(inv.Total)
			}
		}
	}
	return stats
}

func countStatuses(invoices []model.Invoice) []StatusCount {
	order := []string{model.StatusPaid, model.StatusSent, model.StatusDraft, model.StatusOverdue}
	counts := make(map[string]int, len(order))
	for _, inv := range invoices {
		counts[inv.Status]++
	}
	result := make([]StatusCount, 0, len(order))
	for _, status := range order {
		result = append(result, StatusCount{Status: status, Count: counts[status]})
	}
	return result
}

// monthlySeries buckets paid invoices by creation month over the trailing
// window.
func monthlySeries(invoices []model.Invoice, now time.Time) []MonthRevenue {
	series := make([]MonthRevenue, 0, TrendMonths)
	for i := TrendMonths - 1; i >= 0; i-- {
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		revenue := decimal.Zero
		for _, inv := range invoices {
			if inv.Status == model.StatusPaid && sameMonth(inv.CreatedAt, anchor) {
				revenue = revenue.Add(inv.Total)
			}
		}
		series = append(series, MonthRevenue{
			Month:   anchor.Format("Jan"),
			Year:    anchor.Year(),
			Revenue: revenue,
		})
	}
	return series
}

func rankClients(snap Snapshot, limit int) []ClientRevenue {
	ranking := make([]ClientRevenue, 0, len(snap.Clients))
	for _, client := range snap.Clients {
		revenue := decimal.Zero
		for _, inv := range snap.Invoices {
			if inv.Status == model.StatusPaid && inv.ClientID == client.ID {
				revenue = revenue.Add(inv.Total)
			}
		}
		ranking = append(ranking, ClientRevenue{ClientID: client.ID, Name: client.Name, Revenue: revenue})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Revenue.GreaterThan(ranking[j].Revenue)
	})
	return truncateClients(ranking, limit)
}

// rankItems merges product and service performance into one ranking by
// summed line-item amount over paid invoices.
func rankItems(snap Snapshot, limit int) []ItemPerformance {
	merged := make([]ItemPerformance, 0, len(snap.Products)+len(snap.Services))

	for _, product := range snap.Products {
		perf := ItemPerformance{ID: product.ID, Name: product.Name, Type: model.ItemTypeProduct,
			Quantity: decimal.Zero, Revenue: decimal.Zero}
		accumulate(&perf, snap.Invoices, func(item model.InvoiceItem) bool {
			return item.ProductID != nil && *item.ProductID == product.ID
		})
		merged = append(merged, perf)
	}
	for _, service := range snap.Services {
		perf := ItemPerformance{ID: service.ID, Name: service.Name, Type: model.ItemTypeService,
			Quantity: decimal.Zero, Revenue: decimal.Zero}
		accumulate(&perf, snap.Invoices, func(item model.InvoiceItem) bool {
			return item.ServiceID != nil && *item.ServiceID == service.ID
		})
		merged = append(merged, perf)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Revenue.GreaterThan(merged[j].Revenue)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func accumulate(perf *ItemPerformance, invoices []model.Invoice, match func(model.InvoiceItem) bool) {
	for _, inv := range invoices {
		if inv.Status != model.StatusPaid {
			continue
		}
		for _, item := range inv.Items {
			if match(item) {
				perf.Quantity = perf.Quantity.Add(item.Quantity)
				perf.Revenue = perf.Revenue.Add(item.Amount)
			}
		}
	}
}

func truncateClients(ranking []ClientRevenue, limit int) []ClientRevenue {
	if len(ranking) > limit {
		return ranking[:limit]
	}
	return ranking
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
