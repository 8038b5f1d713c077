package service

import (
	"context"

	"github.com/asadtechlead/precise-price-print/internal/model"
	"github.com/asadtechlead/precise-price-print/internal/repository"

	"github.com/google/uuid"
)

type AuditService interface {
	ListAuditLogs(ctx context.Context, ownerID uuid.UUID, action string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) ListAuditLogs(ctx context.Context, ownerID uuid.UUID, action string, page, limit int) ([]model.AuditLog, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, ownerID, action, page, limit)
}
