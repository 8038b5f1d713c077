package service

import (
	"context"
	"fmt"

	"github.com/asadtechlead/precise-price-print/internal/billing"
	"github.com/asadtechlead/precise-price-print/internal/model"
	"github.com/asadtechlead/precise-price-print/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type UpdateSettingsRequest struct {
	CompanyName    *string `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	CompanyEmail   *string `json:"company_email" binding:"omitempty,email"`
	CompanyPhone   *string `json:"company_phone"`
	CurrencyCode   *string `json:"currency_code"`
	CurrencySymbol *string `json:"currency_symbol"`
	DefaultTaxRate *string `json:"default_tax_rate"`
	DefaultDueDays *int    `json:"default_due_days"`
	InvoicePrefix  *string `json:"invoice_prefix"`
	PaymentTerms   *string `json:"payment_terms"`
	FooterText     *string `json:"footer_text"`
}

// --- Interface ---

type SettingsService interface {
	// GetSettings returns persisted settings, or the defaults when the user
	// has never saved any.
	GetSettings(ctx context.Context, ownerID uuid.UUID) (*model.UserSettings, error)
	UpdateSettings(ctx context.Context, ownerID uuid.UUID, req UpdateSettingsRequest) (*model.UserSettings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

// --- Implementation ---

func (s *settingsService) GetSettings(ctx context.Context, ownerID uuid.UUID) (*model.UserSettings, error) {
	settings, err := s.repo.FindByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		defaults := defaultSettings(ownerID)
		return &defaults, nil
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, ownerID uuid.UUID, req UpdateSettingsRequest) (*model.UserSettings, error) {
	settings, err := s.repo.FindByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	creating := settings == nil
	if creating {
		defaults := defaultSettings(ownerID)
		settings = &defaults
	}

	if req.CompanyName != nil {
		settings.CompanyName = *req.CompanyName
	}
	if req.CompanyAddress != nil {
		settings.CompanyAddress = *req.CompanyAddress
	}
	if req.CompanyEmail != nil {
		settings.CompanyEmail = *req.CompanyEmail
	}
	if req.CompanyPhone != nil {
		settings.CompanyPhone = *req.CompanyPhone
	}
	if req.CurrencyCode != nil {
		settings.CurrencyCode = *req.CurrencyCode
	}
	if req.CurrencySymbol != nil {
		settings.CurrencySymbol = *req.CurrencySymbol
	}
	if req.DefaultTaxRate != nil {
		rate, parseErr := decimal.NewFromString(*req.DefaultTaxRate)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid default_tax_rate: %w", parseErr)
		}
		if rateErr := billing.ValidateTaxRate(rate); rateErr != nil {
			return nil, fmt.Errorf("invalid default_tax_rate: %w", rateErr)
		}
		settings.DefaultTaxRate = rate
	}
	if req.DefaultDueDays != nil {
		if *req.DefaultDueDays < 0 {
			return nil, fmt.Errorf("default_due_days must not be negative")
		}
		settings.DefaultDueDays = *req.DefaultDueDays
	}
	if req.InvoicePrefix != nil {
		settings.InvoicePrefix = *req.InvoicePrefix
	}
	if req.PaymentTerms != nil {
		settings.PaymentTerms = *req.PaymentTerms
	}
	if req.FooterText != nil {
		settings.FooterText = *req.FooterText
	}

	if creating {
		if err := s.repo.Create(ctx, settings); err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}
	} else {
		if err := s.repo.Update(ctx, settings); err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}
	return settings, nil
}
