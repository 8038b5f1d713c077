package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asadtechlead/precise-price-print/internal/model"
)

func paidInvoice(clientID uuid.UUID, total string, createdAt time.Time, paidAt *time.Time) model.Invoice {
	return model.Invoice{
		ID:        uuid.New(),
		ClientID:  clientID,
		Status:    model.StatusPaid,
		Total:     decimal.RequireFromString(total),
		CreatedAt: createdAt,
		PaidAt:    paidAt,
	}
}

func TestSummarizeStatusBuckets(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC)
	client := uuid.New()

	snap := Snapshot{
		Invoices: []model.Invoice{
			paidInvoice(client, "100", thisMonth, &thisMonth),
			paidInvoice(client, "200", lastMonth, &lastMonth),
			{ID: uuid.New(), ClientID: client, Status: model.StatusSent, Total: decimal.NewFromInt(50), CreatedAt: thisMonth},
		},
		Clients: []model.Client{{ID: client, Name: "Acme"}},
	}

	report := Summarize(snap, now)

	assert.True(t, report.Stats.TotalEarned.Equal(decimal.NewFromInt(300)), "totalEarned = %s", report.Stats.TotalEarned)
	assert.True(t, report.Stats.TotalPending.Equal(decimal.NewFromInt(50)), "totalPending = %s", report.Stats.TotalPending)
	assert.True(t, report.Stats.ThisMonthEarnings.Equal(decimal.NewFromInt(100)), "thisMonth = %s", report.Stats.ThisMonthEarnings)
	assert.True(t, report.Stats.OverdueAmount.IsZero())
	assert.Equal(t, 1, report.Stats.TotalClients)
	assert.Equal(t, 3, report.Stats.TotalInvoices)
}

func TestSummarizeOverdueCountsAsPending(t *testing.T) {
	now := time.Now()
	client := uuid.New()
	snap := Snapshot{
		Invoices: []model.Invoice{
			{ID: uuid.New(), ClientID: client, Status: model.StatusOverdue, Total: decimal.NewFromInt(80), CreatedAt: now},
			{ID: uuid.New(), ClientID: client, Status: model.StatusSent, Total: decimal.NewFromInt(20), CreatedAt: now},
			{ID: uuid.New(), ClientID: client, Status: model.StatusDraft, Total: decimal.NewFromInt(999), CreatedAt: now},
		},
	}

	stats := Stats(snap, now)

	assert.True(t, stats.TotalPending.Equal(decimal.NewFromInt(100)), "totalPending = %s", stats.TotalPending)
	assert.True(t, stats.OverdueAmount.Equal(decimal.NewFromInt(80)))
	assert.True(t, stats.TotalEarned.IsZero())
}

// A paid invoice with no PaidAt contributes to TotalEarned but never to
// ThisMonthEarnings.
func TestSummarizePaidWithoutPaidAt(t *testing.T) {
	now := time.Now()
	client := uuid.New()
	snap := Snapshot{
		Invoices: []model.Invoice{paidInvoice(client, "150", now, nil)},
	}

	stats := Stats(snap, now)

	assert.True(t, stats.TotalEarned.Equal(decimal.NewFromInt(150)))
	assert.True(t, stats.ThisMonthEarnings.IsZero())
}

// The trend series buckets by CreatedAt, not PaidAt.
func TestMonthlySeriesUsesCreatedAt(t *testing.T) {
	now := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	client := uuid.New()
	createdJune := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	paidAugust := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	tooOld := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	snap := Snapshot{
		Invoices: []model.Invoice{
			paidInvoice(client, "400", createdJune, &paidAugust),
			paidInvoice(client, "50", tooOld, &tooOld),
			{ID: uuid.New(), ClientID: client, Status: model.StatusSent, Total: decimal.NewFromInt(75), CreatedAt: createdJune},
		},
	}

	series := Summarize(snap, now).MonthlyRevenue
	require.Len(t, series, TrendMonths)

	assert.Equal(t, "Mar", series[0].Month)
	assert.Equal(t, "Aug", series[5].Month)

	byMonth := make(map[string]decimal.Decimal, len(series))
	for _, point := range series {
		byMonth[point.Month] = point.Revenue
	}
	assert.True(t, byMonth["Jun"].Equal(decimal.NewFromInt(400)), "Jun = %s", byMonth["Jun"])
	assert.True(t, byMonth["Aug"].IsZero(), "Aug = %s", byMonth["Aug"])
}

func TestRankClients(t *testing.T) {
	now := time.Now()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	snap := Snapshot{
		Clients: []model.Client{
			{ID: a, Name: "A"},
			{ID: b, Name: "B"},
			{ID: c, Name: "C"},
		},
		Invoices: []model.Invoice{
			paidInvoice(a, "500", now, &now),
			paidInvoice(b, "900", now, &now),
			paidInvoice(c, "300", now, &now),
			// unpaid revenue never counts toward the ranking
			{ID: uuid.New(), ClientID: c, Status: model.StatusSent, Total: decimal.NewFromInt(5000), CreatedAt: now},
		},
	}

	top := Summarize(snap, now).TopClients
	require.Len(t, top, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{top[0].Name, top[1].Name, top[2].Name})

	// truncation to the ranking limit
	for i := 0; i < 10; i++ {
		snap.Clients = append(snap.Clients, model.Client{ID: uuid.New(), Name: "filler"})
	}
	top = Summarize(snap, now).TopClients
	assert.Len(t, top, RankingLimit)
}

func TestRankItemsMergesProductsAndServices(t *testing.T) {
	now := time.Now()
	client := uuid.New()
	product := model.Product{ID: uuid.New(), Name: "Widget"}
	service := model.Service{ID: uuid.New(), Name: "Consulting"}

	productID := product.ID
	serviceID := service.ID

	paid := model.Invoice{
		ID:       uuid.New(),
		ClientID: client,
		Status:   model.StatusPaid,
		Total:    decimal.NewFromInt(650),
		Items: []model.InvoiceItem{
			{ProductID: &productID, Type: model.ItemTypeProduct, Quantity: decimal.NewFromInt(2), Amount: decimal.NewFromInt(150)},
			{ServiceID: &serviceID, Type: model.ItemTypeService, Quantity: decimal.NewFromInt(4), Amount: decimal.NewFromInt(500)},
		},
		CreatedAt: now,
		PaidAt:    &now,
	}
	draft := paid
	draft.ID = uuid.New()
	draft.Status = model.StatusDraft

	snap := Snapshot{
		Invoices: []model.Invoice{paid, draft},
		Products: []model.Product{product},
		Services: []model.Service{service},
	}

	top := Summarize(snap, now).TopItems
	require.Len(t, top, 2)

	assert.Equal(t, "Consulting", top[0].Name)
	assert.Equal(t, model.ItemTypeService, top[0].Type)
	assert.True(t, top[0].Revenue.Equal(decimal.NewFromInt(500)))
	assert.True(t, top[0].Quantity.Equal(decimal.NewFromInt(4)))

	assert.Equal(t, "Widget", top[1].Name)
	assert.True(t, top[1].Revenue.Equal(decimal.NewFromInt(150)))
}

func TestStatusCounts(t *testing.T) {
	now := time.Now()
	client := uuid.New()
	snap := Snapshot{
		Invoices: []model.Invoice{
			paidInvoice(client, "1", now, &now),
			paidInvoice(client, "1", now, &now),
			{ID: uuid.New(), ClientID: client, Status: model.StatusDraft, CreatedAt: now},
		},
	}

	counts := Summarize(snap, now).StatusCounts
	require.Len(t, counts, 4)

	byStatus := make(map[string]int, len(counts))
	for _, sc := range counts {
		byStatus[sc.Status] = sc.Count
	}
	assert.Equal(t, 2, byStatus[model.StatusPaid])
	assert.Equal(t, 1, byStatus[model.StatusDraft])
	assert.Equal(t, 0, byStatus[model.StatusOverdue])
}
