package service

import (
	"context"
	"fmt"
	"time"

	"github.com/asadtechlead/precise-price-print/internal/billing"
	"github.com/asadtechlead/precise-price-print/internal/repository"

	"github.com/google/uuid"
)

// DashboardService serves the reporting views. Everything is derived from
// the owner's current dataset on each call; nothing is cached or stored.
type DashboardService interface {
	GetStats(ctx context.Context, ownerID uuid.UUID) (billing.DashboardStats, error)
	GetAnalytics(ctx context.Context, ownerID uuid.UUID) (billing.Report, error)
}

type dashboardService struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
}

func NewDashboardService(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
) DashboardService {
	return &dashboardService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, ownerID uuid.UUID) (billing.DashboardStats, error) {
	snap, err := s.loadSnapshot(ctx, ownerID)
	if err != nil {
		return billing.DashboardStats{}, err
	}
	return billing.Stats(snap, time.Now()), nil
}

func (s *dashboardService) GetAnalytics(ctx context.Context, ownerID uuid.UUID) (billing.Report, error) {
	snap, err := s.loadSnapshot(ctx, ownerID)
	if err != nil {
		return billing.Report{}, err
	}
	return billing.Summarize(snap, time.Now()), nil
}

func (s *dashboardService) loadSnapshot(ctx context.Context, ownerID uuid.UUID) (billing.Snapshot, error) {
	invoices, err := s.invoiceRepo.ListAll(ctx, ownerID)
	if err != nil {
		return billing.Snapshot{}, fmt.Errorf("failed to load invoices: %w", err)
	}
	clients, err := s.clientRepo.ListAll(ctx, ownerID)
	if err != nil {
		return billing.Snapshot{}, fmt.Errorf("failed to load clients: %w", err)
	}
	products, err := s.productRepo.ListAll(ctx, ownerID)
	if err != nil {
		return billing.Snapshot{}, fmt.Errorf("failed to load products: %w", err)
	}
	services, err := s.serviceRepo.ListAll(ctx, ownerID)
	if err != nil {
		return billing.Snapshot{}, fmt.Errorf("failed to load services: %w", err)
	}
	return billing.Snapshot{
		Invoices: invoices,
		Clients:  clients,
		Products: products,
		Services: services,
	}, nil
}
