package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asadtechlead/precise-price-print/internal/model"
	"github.com/asadtechlead/precise-price-print/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Balance string `json:"balance"` // optional opening balance, decimal string
}

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Zip     *string `json:"zip"`
	Balance *string `json:"balance"`
}

// --- Interface ---

type ClientService interface {
	CreateClient(ctx context.Context, ownerID uuid.UUID, req CreateClientRequest) (*model.Client, error)
	GetClient(ctx context.Context, ownerID uuid.UUID, id string) (*model.Client, error)
	ListClients(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Client, int64, error)
	UpdateClient(ctx context.Context, ownerID uuid.UUID, id string, req UpdateClientRequest) (*model.Client, error)
	DeleteClient(ctx context.Context, ownerID uuid.UUID, id string) error
}

type clientService struct {
	repo      repository.ClientRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewClientService(
	repo repository.ClientRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) ClientService {
	return &clientService{repo: repo, auditRepo: auditRepo, txManager: txManager}
}

// --- Implementation ---

func (s *clientService) CreateClient(ctx context.Context, ownerID uuid.UUID, req CreateClientRequest) (*model.Client, error) {
	balance := decimal.Zero
	if req.Balance != "" {
		parsed, err := decimal.NewFromString(req.Balance)
		if err != nil {
			return nil, fmt.Errorf("invalid balance: %w", err)
		}
		balance = parsed
	}

	client := &model.Client{
		UserID:  ownerID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Zip:     req.Zip,
		Balance: balance,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.repo.Create(txCtx, client); createErr != nil {
			return fmt.Errorf("failed to create client: %w", createErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionCreateClient, client)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, ownerID uuid.UUID, id string) (*model.Client, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}
	return s.repo.FindByID(ctx, ownerID, clientID)
}

func (s *clientService) ListClients(ctx context.Context, ownerID uuid.UUID, search string, page, limit int) ([]model.Client, int64, error) {
	return s.repo.List(ctx, ownerID, search, page, limit)
}

func (s *clientService) UpdateClient(ctx context.Context, ownerID uuid.UUID, id string, req UpdateClientRequest) (*model.Client, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}

	client, err := s.repo.FindByID(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.City != nil {
		client.City = *req.City
	}
	if req.State != nil {
		client.State = *req.State
	}
	if req.Zip != nil {
		client.Zip = *req.Zip
	}
	if req.Balance != nil {
		balance, parseErr := decimal.NewFromString(*req.Balance)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid balance: %w", parseErr)
		}
		client.Balance = balance
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.repo.Update(txCtx, client); updateErr != nil {
			return fmt.Errorf("failed to update client: %w", updateErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionUpdateClient, client)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, ownerID uuid.UUID, id string) error {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid client id: %w", err)
	}

	client, err := s.repo.FindByID(ctx, ownerID, clientID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.repo.Delete(txCtx, ownerID, clientID); deleteErr != nil {
			return fmt.Errorf("failed to delete client: %w", deleteErr)
		}
		return s.writeAudit(txCtx, ownerID, model.ActionDeleteClient, client)
	})
}

func (s *clientService) writeAudit(ctx context.Context, ownerID uuid.UUID, action string, client *model.Client) error {
	details, _ := json.Marshal(map[string]interface{}{"name": client.Name, "email": client.Email})
	entry := &model.AuditLog{
		UserID:     ownerID,
		Action:     action,
		EntityID:   client.ID.String(),
		EntityName: client.Name,
		Details:    string(details),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
