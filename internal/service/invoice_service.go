package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/asadtechlead/precise-price-print/internal/billing"
	"github.com/asadtechlead/precise-price-print/internal/mailer"
	"github.com/asadtechlead/precise-price-print/internal/model"
	"github.com/asadtechlead/precise-price-print/internal/pdf"
	"github.com/asadtechlead/precise-price-print/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notifier pushes change events to connected clients. The websocket hub
// implements it; a nil-safe no-op stands in during tests.
type Notifier interface {
	Notify(eventType string, payload interface{})
}

// --- DTOs ---

type InvoiceItemInput struct {
	ProductID   string `json:"product_id"`
	ServiceID   string `json:"service_id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
}

type CreateInvoiceRequest struct {
	ClientID string             `json:"client_id" binding:"required"`
	Items    []InvoiceItemInput `json:"items"`
	TaxRate  *string            `json:"tax_rate"` // flat percentage 0..100; settings default when omitted
	Status   string             `json:"status" binding:"omitempty,oneof=draft sent paid overdue"`
	DueDate  string             `json:"due_date"` // 2006-01-02; settings default_due_days when omitted
	Notes    string             `json:"notes"`
}

type UpdateInvoiceRequest struct {
	ClientID *string             `json:"client_id"`
	Items    *[]InvoiceItemInput `json:"items"`
	TaxRate  *string             `json:"tax_rate"`
	Status   *string             `json:"status" binding:"omitempty,oneof=draft sent paid overdue"`
	DueDate  *string             `json:"due_date"`
	Notes    *string             `json:"notes"`
}

type ListInvoicesFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceRequest) (*model.Invoice, error)
	GetInvoice(ctx context.Context, ownerID uuid.UUID, id string) (*model.Invoice, error)
	ListInvoices(ctx context.Context, ownerID uuid.UUID, filter ListInvoicesFilter) ([]model.Invoice, int64, error)
	UpdateInvoice(ctx context.Context, ownerID uuid.UUID, id string, req UpdateInvoiceRequest) (*model.Invoice, error)
	DeleteInvoice(ctx context.Context, ownerID uuid.UUID, id string) error
	SendInvoice(ctx context.Context, ownerID uuid.UUID, id string) (*model.Invoice, error)
	RenderPDF(ctx context.Context, ownerID uuid.UUID, id string) ([]byte, string, error)
}

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	clientRepo   repository.ClientRepository
	productRepo  repository.ProductRepository
	serviceRepo  repository.ServiceRepository
	settingsRepo repository.SettingsRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	mail         mailer.Mailer
	notifier     Notifier
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	settingsRepo repository.SettingsRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	mail mailer.Mailer,
	notifier Notifier,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		mail:         mail,
		notifier:     notifier,
	}
}

// --- Implementation ---

func (s *invoiceService) CreateInvoice(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceRequest) (*model.Invoice, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}
	if _, err := s.clientRepo.FindByID(ctx, ownerID, clientID); err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}

	settings := s.effectiveSettings(ctx, ownerID)

	taxRate := settings.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate, err = parseTaxRate(*req.TaxRate)
		if err != nil {
			return nil, err
		}
	}

	catalog, err := s.loadCatalog(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items, err := buildItems(catalog, req.Items)
	if err != nil {
		return nil, err
	}
	totals := billing.ComputeTotals(items, taxRate)

	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}

	dueDate := time.Now().AddDate(0, 0, settings.DefaultDueDays)
	if req.DueDate != "" {
		dueDate, err = time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date: %w", err)
		}
	}

	invoice := &model.Invoice{
		UserID:    ownerID,
		ClientID:  clientID,
		Items:     items,
		Subtotal:  totals.Subtotal,
		TaxRate:   taxRate,
		TaxAmount: totals.TaxAmount,
		Total:     totals.Total,
		Status:    status,
		DueDate:   dueDate,
		Notes:     req.Notes,
	}
	if status == model.StatusPaid {
		now := time.Now()
		invoice.PaidAt = &now
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		number, numErr := s.generateInvoiceNumber(txCtx, ownerID, settings.InvoicePrefix)
		if numErr != nil {
			return fmt.Errorf("failed to generate invoice number: %w", numErr)
		}
		invoice.InvoiceNumber = number

		if createErr := s.invoiceRepo.Create(txCtx, invoice); createErr != nil {
			return fmt.Errorf("failed to create invoice: %w", createErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionCreateInvoice, invoice)
	})
	if err != nil {
		return nil, err
	}

	reloaded, err := s.invoiceRepo.FindByID(ctx, ownerID, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload invoice: %w", err)
	}
	s.notify("invoice.created", reloaded)
	return reloaded, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, ownerID uuid.UUID, id string) (*model.Invoice, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice id: %w", err)
	}
	return s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, ownerID uuid.UUID, filter ListInvoicesFilter) ([]model.Invoice, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return nil, 0, fmt.Errorf("invalid status %q", filter.Status)
	}
	return s.invoiceRepo.List(ctx, ownerID, repository.InvoiceListFilter{
		Status: filter.Status,
		Search: filter.Search,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, ownerID uuid.UUID, id string, req UpdateInvoiceRequest) (*model.Invoice, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	wasPaid := invoice.Status == model.StatusPaid

	if req.ClientID != nil {
		clientID, parseErr := uuid.Parse(*req.ClientID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid client id: %w", parseErr)
		}
		if _, findErr := s.clientRepo.FindByID(ctx, ownerID, clientID); findErr != nil {
			return nil, fmt.Errorf("client not found: %w", findErr)
		}
		invoice.ClientID = clientID
	}
	if req.TaxRate != nil {
		taxRate, parseErr := parseTaxRate(*req.TaxRate)
		if parseErr != nil {
			return nil, parseErr
		}
		invoice.TaxRate = taxRate
	}
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return nil, fmt.Errorf("invalid status %q", *req.Status)
		}
		invoice.Status = *req.Status
	}
	if req.DueDate != nil {
		dueDate, parseErr := time.Parse("2006-01-02", *req.DueDate)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid due_date: %w", parseErr)
		}
		invoice.DueDate = dueDate
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}

	replaceItems := false
	if req.Items != nil {
		catalog, loadErr := s.loadCatalog(ctx, ownerID)
		if loadErr != nil {
			return nil, loadErr
		}
		items, buildErr := buildItems(catalog, *req.Items)
		if buildErr != nil {
			return nil, buildErr
		}
		invoice.Items = items
		replaceItems = true
	}

	// Derived fields are always recomputed; whatever the caller sent for
	// subtotal/tax_amount/total is ignored.
	totals := billing.ComputeTotals(invoice.Items, invoice.TaxRate)
	invoice.Subtotal = totals.Subtotal
	invoice.TaxAmount = totals.TaxAmount
	invoice.Total = totals.Total

	// PaidAt marks the transition into paid, and is cleared on the way out.
	nowPaid := invoice.Status == model.StatusPaid
	if nowPaid && !wasPaid {
		now := time.Now()
		invoice.PaidAt = &now
	}
	if !nowPaid && wasPaid {
		invoice.PaidAt = nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if replaceItems {
			if repErr := s.invoiceRepo.ReplaceItems(txCtx, invoice.ID, invoice.Items); repErr != nil {
				return fmt.Errorf("failed to replace items: %w", repErr)
			}
		}
		if updateErr := s.invoiceRepo.Update(txCtx, invoice); updateErr != nil {
			return fmt.Errorf("failed to update invoice: %w", updateErr)
		}
		action := model.ActionUpdateInvoice
		if nowPaid && !wasPaid {
			action = model.ActionMarkPaid
		}
		return s.writeAudit(txCtx, ownerID, action, invoice)
	})
	if err != nil {
		return nil, err
	}

	reloaded, err := s.invoiceRepo.FindByID(ctx, ownerID, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload invoice: %w", err)
	}
	if nowPaid && !wasPaid {
		s.notify("invoice.paid", reloaded)
	} else {
		s.notify("invoice.updated", reloaded)
	}
	return reloaded, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, ownerID uuid.UUID, id string) error {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.invoiceRepo.Delete(txCtx, ownerID, invoiceID); deleteErr != nil {
			return fmt.Errorf("failed to delete invoice: %w", deleteErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionDeleteInvoice, invoice)
	})
	if err != nil {
		return err
	}
	s.notify("invoice.deleted", map[string]string{"id": invoiceID.String()})
	return nil
}

// SendInvoice emails the invoice to the client and moves a draft to sent.
// The email is best-effort for delivery but a hard failure is surfaced so
// the caller knows nothing went out.
func (s *invoiceService) SendInvoice(ctx context.Context, ownerID uuid.UUID, id string) (*model.Invoice, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Client == nil || invoice.Client.Email == "" {
		return nil, fmt.Errorf("client has no email address")
	}

	settings := s.effectiveSettings(ctx, ownerID)
	company := settings.CompanyName
	if company == "" {
		company = "Your vendor"
	}

	msg := mailer.InvoiceEmail{
		To:             invoice.Client.Email,
		ClientName:     invoice.Client.Name,
		InvoiceNumber:  invoice.InvoiceNumber,
		Total:          invoice.Total,
		CurrencySymbol: settings.CurrencySymbol,
		DueDate:        invoice.DueDate,
		CompanyName:    company,
	}
	if err := s.mail.SendInvoice(ctx, msg); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if invoice.Status == model.StatusDraft {
			invoice.Status = model.StatusSent
			if updateErr := s.invoiceRepo.Update(txCtx, invoice); updateErr != nil {
				return fmt.Errorf("failed to update invoice: %w", updateErr)
			}
		}
		return s.writeAudit(txCtx, ownerID, model.ActionSendInvoice, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.notify("invoice.sent", invoice)
	return invoice, nil
}

// RenderPDF returns the invoice PDF bytes and a suggested filename.
func (s *invoiceService) RenderPDF(ctx context.Context, ownerID uuid.UUID, id string) ([]byte, string, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, "", fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	var client model.Client
	if invoice.Client != nil {
		client = *invoice.Client
	}

	settings := s.effectiveSettings(ctx, ownerID)
	data, err := pdf.RenderInvoice(*invoice, client, settings)
	if err != nil {
		return nil, "", err
	}
	return data, invoice.InvoiceNumber + ".pdf", nil
}

// --- Helpers ---

// effectiveSettings returns the owner's settings or the defaults when no row
// exists yet. Load failures also fall back to the defaults: invoicing must
// not stop because preferences are unreadable.
func (s *invoiceService) effectiveSettings(ctx context.Context, ownerID uuid.UUID) model.UserSettings {
	settings, err := s.settingsRepo.FindByUserID(ctx, ownerID)
	if err != nil || settings == nil {
		return defaultSettings(ownerID)
	}
	return *settings
}

func defaultSettings(ownerID uuid.UUID) model.UserSettings {
	return model.UserSettings{
		UserID:         ownerID,
		CurrencyCode:   "USD",
		CurrencySymbol: "$",
		DefaultTaxRate: decimal.Zero,
		DefaultDueDays: 30,
		InvoicePrefix:  "INV",
	}
}

func (s *invoiceService) generateInvoiceNumber(ctx context.Context, ownerID uuid.UUID, prefix string) (string, error) {
	if prefix == "" {
		prefix = "INV"
	}
	datePrefix := fmt.Sprintf("%s-%s-", prefix, time.Now().Format("20060102"))

	count, err := s.invoiceRepo.CountByPrefix(ctx, ownerID, datePrefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%05d", datePrefix, count+1), nil
}

func (s *invoiceService) loadCatalog(ctx context.Context, ownerID uuid.UUID) (billing.Catalog, error) {
	products, err := s.productRepo.ListAll(ctx, ownerID)
	if err != nil {
		return billing.Catalog{}, fmt.Errorf("failed to load products: %w", err)
	}
	services, err := s.serviceRepo.ListAll(ctx, ownerID)
	if err != nil {
		return billing.Catalog{}, fmt.Errorf("failed to load services: %w", err)
	}
	return billing.NewCatalog(products, services), nil
}

// buildItems turns the request inputs into line items, applying changes in
// form order: reference selection first (copies name and rate), then the
// explicit description, quantity and rate overrides.
func buildItems(catalog billing.Catalog, inputs []InvoiceItemInput) ([]model.InvoiceItem, error) {
	items := make([]model.InvoiceItem, 0, len(inputs))
	for i, input := range inputs {
		item := billing.NewItem()

		changes := make([]billing.ItemChange, 0, 4)
		if input.ProductID != "" {
			ref, err := uuid.Parse(input.ProductID)
			if err != nil {
				return nil, fmt.Errorf("item %d: invalid product_id: %w", i, err)
			}
			changes = append(changes, billing.ProductChange(ref))
		} else if input.ServiceID != "" {
			ref, err := uuid.Parse(input.ServiceID)
			if err != nil {
				return nil, fmt.Errorf("item %d: invalid service_id: %w", i, err)
			}
			changes = append(changes, billing.ServiceChange(ref))
		}
		if input.Description != "" {
			changes = append(changes, billing.DescriptionChange(input.Description))
		}
		if input.Quantity != "" {
			q, err := decimal.NewFromString(input.Quantity)
			if err != nil {
				return nil, fmt.Errorf("item %d: invalid quantity: %w", i, err)
			}
			changes = append(changes, billing.QuantityChange(q))
		}
		if input.Rate != "" {
			r, err := decimal.NewFromString(input.Rate)
			if err != nil {
				return nil, fmt.Errorf("item %d: invalid rate: %w", i, err)
			}
			changes = append(changes, billing.RateChange(r))
		}

		var err error
		for _, change := range changes {
			item, err = catalog.UpdateItem(item, change)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func parseTaxRate(value string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax_rate: %w", err)
	}
	if err := billing.ValidateTaxRate(rate); err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}

func (s *invoiceService) writeAudit(ctx context.Context, ownerID uuid.UUID, action string, invoice *model.Invoice) error {
	details, _ := json.Marshal(map[string]interface{}{
		"invoice_number": invoice.InvoiceNumber,
		"status":         invoice.Status,
		"total":          invoice.Total.String(),
	})
	entry := &model.AuditLog{
		UserID:     ownerID,
		Action:     action,
		EntityID:   invoice.ID.String(),
		EntityName: invoice.InvoiceNumber,
		Details:    string(details),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *invoiceService) notify(eventType string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.Notify(eventType, payload)
	}
}
