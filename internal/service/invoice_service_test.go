package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/asadtechlead/precise-price-print/internal/mailer"
	"github.com/asadtechlead/precise-price-print/internal/model"
	"github.com/asadtechlead/precise-price-print/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent []mailer.InvoiceEmail
	fail bool
}

func (m *fakeMailer) SendInvoice(ctx context.Context, msg mailer.InvoiceEmail) error {
	if m.fail {
		return mailer.ErrEmailFailed
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testEnv struct {
	invoices InvoiceService
	clients  ClientService
	catalog  CatalogService
	mail     *fakeMailer
	ownerID  uuid.UUID
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Client{}, &model.Product{}, &model.Service{},
		&model.Invoice{}, &model.InvoiceItem{}, &model.UserSettings{}, &model.AuditLog{},
	))

	txManager := repository.NewTransactionManager(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	mail := &fakeMailer{}
	return &testEnv{
		invoices: NewInvoiceService(invoiceRepo, clientRepo, productRepo, serviceRepo,
			settingsRepo, auditRepo, txManager, mail, nil),
		clients: NewClientService(clientRepo, auditRepo, txManager),
		catalog: NewCatalogService(productRepo, serviceRepo, auditRepo, txManager),
		mail:    mail,
		ownerID: uuid.New(),
	}
}

func (e *testEnv) mustClient(t *testing.T, name, email string) *model.Client {
	t.Helper()
	client, err := e.clients.CreateClient(context.Background(), e.ownerID, CreateClientRequest{
		Name:  name,
		Email: email,
	})
	require.NoError(t, err)
	return client
}

func TestCreateInvoiceComputesTotalsServerSide(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.mustClient(t, "Acme Corp", "billing@acme.test")

	taxRate := "8.25"
	invoice, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{
		ClientID: client.ID.String(),
		TaxRate:  &taxRate,
		Items: []InvoiceItemInput{
			{Description: "Widget", Quantity: "3", Rate: "19.99"},
			{Description: "Gadget", Quantity: "1.5", Rate: "10"},
		},
	})
	require.NoError(t, err)

	// 3*19.99 = 59.97, 1.5*10 = 15.00 -> subtotal 74.97
	assert.True(t, invoice.Subtotal.Equal(decimal.RequireFromString("74.97")), "subtotal %s", invoice.Subtotal)
	// 74.97 * 8.25% = 6.185025 -> 6.19
	assert.True(t, invoice.TaxAmount.Equal(decimal.RequireFromString("6.19")), "tax %s", invoice.TaxAmount)
	assert.True(t, invoice.Total.Equal(decimal.RequireFromString("81.16")), "total %s", invoice.Total)

	assert.Equal(t, model.StatusDraft, invoice.Status)
	assert.Nil(t, invoice.PaidAt)
	assert.Len(t, invoice.Items, 2)
}

func TestCreateInvoiceNumberSequence(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.mustClient(t, "Acme Corp", "")

	first, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{ClientID: client.ID.String()})
	require.NoError(t, err)
	second, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{ClientID: client.ID.String()})
	require.NoError(t, err)

	today := time.Now().Format("20060102")
	assert.Equal(t, fmt.Sprintf("INV-%s-00001", today), first.InvoiceNumber)
	assert.Equal(t, fmt.Sprintf("INV-%s-00002", today), second.InvoiceNumber)
}

func TestCreateInvoiceProductSelectionCopiesNameAndPrice(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.mustClient(t, "Acme Corp", "")

	product, err := env.catalog.CreateProduct(ctx, env.ownerID, CreateProductRequest{
		Name:  "Standing Desk",
		Price: "499.50",
	})
	require.NoError(t, err)

	invoice, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items: []InvoiceItemInput{
			{ProductID: product.ID.String(), Quantity: "2"},
		},
	})
	require.NoError(t, err)

	require.Len(t, invoice.Items, 1)
	item := invoice.Items[0]
	assert.Equal(t, model.ItemTypeProduct, item.Type)
	assert.Equal(t, "Standing Desk", item.Description)
	require.NotNil(t, item.ProductID)
	assert.Equal(t, product.ID, *item.ProductID)
	assert.True(t, item.Rate.Equal(decimal.RequireFromString("499.50")))
	assert.True(t, item.Amount.Equal(decimal.RequireFromString("999.00")), "amount %s", item.Amount)
}

func TestCreateInvoiceUnknownProductIsNoOp(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.mustClient(t, "Acme Corp", "")

	invoice, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items: []InvoiceItemInput{
			{ProductID: uuid.NewString(), Quantity: "2"},
		},
	})
	require.NoError(t, err)

	// Unknown reference leaves the line at its defaults
	require.Len(t, invoice.Items, 1)
	assert.Nil(t, invoice.Items[0].ProductID)
	assert.True(t, invoice.Items[0].Rate.IsZero())
}

func TestCreateInvoiceRejectsNegativeQuantity(t *testing.T) {
	env := setupEnv(t)
	client := env.mustClient(t, "Acme Corp", "")

	_, err := env.invoices.CreateInvoice(context.Background(), env.ownerID, CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items:    []InvoiceItemInput{{Description: "Bad", Quantity: "-1", Rate: "10"}},
	})
	assert.Error(t, err)
}

func TestCreateInvoiceRejectsTaxRateOutOfRange(t *testing.T) {
	env := setupEnv(t)
	client := env.mustClient(t, "Acme Corp", "")

	over := "101"
	_, err := env.invoices.CreateInvoice(context.Background(), env.ownerID, CreateInvoiceRequest{
		ClientID: client.ID.String(),
		TaxRate:  &over,
	})
	assert.Error(t, err)
}

func TestUpdateInvoicePaidTransitions(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.mustClient(t, "Acme Corp", "")

	invoice, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items:    []InvoiceItemInput{{Description: "Work", Quantity: "1", Rate: "100"}},
	})
	require.NoError(t, err)
	require.Nil(t, invoice.PaidAt)

	paid := model.StatusPaid
	invoice, err = env.invoices.UpdateInvoice(ctx, env.ownerID, invoice.ID.String(), UpdateInvoiceRequest{Status: &paid})
	require.NoError(t, err)
	require.NotNil(t, invoice.PaidAt)
	assert.WithinDuration(t, time.Now(), *invoice.PaidAt, 5*time.Second)

	// Leaving paid clears the timestamp again
	sent := model.StatusSent
	invoice, err = env.invoices.UpdateInvoice(ctx, env.ownerID, invoice.ID.String(), UpdateInvoiceRequest{Status: &sent})
	require.NoError(t, err)
	assert.Nil(t, invoice.PaidAt)
}

func TestUpdateInvoiceReplacesItemsAndRecomputes(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.mustClient(t, "Acme Corp", "")

	invoice, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items:    []InvoiceItemInput{{Description: "Old", Quantity: "1", Rate: "50"}},
	})
	require.NoError(t, err)

	newItems := []InvoiceItemInput{
		{Description: "New A", Quantity: "2", Rate: "25"},
		{Description: "New B", Quantity: "4", Rate: "12.50"},
	}
	invoice, err = env.invoices.UpdateInvoice(ctx, env.ownerID, invoice.ID.String(), UpdateInvoiceRequest{Items: &newItems})
	require.NoError(t, err)

	require.Len(t, invoice.Items, 2)
	assert.True(t, invoice.Subtotal.Equal(decimal.RequireFromString("100")), "subtotal %s", invoice.Subtotal)
	assert.True(t, invoice.Total.Equal(decimal.RequireFromString("100")))
}

func TestSendInvoiceMovesDraftToSent(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.mustClient(t, "Acme Corp", "billing@acme.test")

	invoice, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{
		ClientID: client.ID.String(),
		Items:    []InvoiceItemInput{{Description: "Work", Quantity: "1", Rate: "100"}},
	})
	require.NoError(t, err)

	invoice, err = env.invoices.SendInvoice(ctx, env.ownerID, invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.StatusSent, invoice.Status)

	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, "billing@acme.test", env.mail.sent[0].To)
	assert.Equal(t, invoice.InvoiceNumber, env.mail.sent[0].InvoiceNumber)
}

func TestSendInvoiceFailsWithoutClientEmail(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.mustClient(t, "Acme Corp", "")

	invoice, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{ClientID: client.ID.String()})
	require.NoError(t, err)

	_, err = env.invoices.SendInvoice(ctx, env.ownerID, invoice.ID.String())
	assert.Error(t, err)
	assert.Empty(t, env.mail.sent)
}

func TestSendInvoiceKeepsStatusOnMailFailure(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.mustClient(t, "Acme Corp", "billing@acme.test")

	invoice, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{ClientID: client.ID.String()})
	require.NoError(t, err)

	env.mail.fail = true
	_, err = env.invoices.SendInvoice(ctx, env.ownerID, invoice.ID.String())
	assert.ErrorIs(t, err, mailer.ErrEmailFailed)

	reloaded, err := env.invoices.GetInvoice(ctx, env.ownerID, invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, reloaded.Status)
}

func TestInvoiceOwnerIsolation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.mustClient(t, "Acme Corp", "")

	invoice, err := env.invoices.CreateInvoice(ctx, env.ownerID, CreateInvoiceRequest{ClientID: client.ID.String()})
	require.NoError(t, err)

	otherOwner := uuid.New()
	_, err = env.invoices.GetInvoice(ctx, otherOwner, invoice.ID.String())
	assert.Error(t, err)
}
