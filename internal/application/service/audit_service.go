package service

import (
	"context"
	"log"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/repository"
	"github.com/dsouzac/quotify-api/pkg/pagination"
	"github.com/google/uuid"
)

// AuditService records user actions. Recording is best-effort: a failed
// write is logged and discarded, never surfaced to the caller.
type AuditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record writes an audit entry. It detaches from the caller's context so a
// cancelled request cannot lose the entry.
func (s *AuditService) Record(userID uuid.UUID, action string) {
	entry := &entity.AuditLog{
		UserID: userID,
		Action: action,
	}
	if err := s.auditRepo.Create(context.Background(), entry); err != nil {
		log.Printf("Warning: failed to record audit entry %q: %v", action, err)
	}
}

// List returns audit entries, newest first
func (s *AuditService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.AuditLog], error) {
	logs, total, err := s.auditRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(logs, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
