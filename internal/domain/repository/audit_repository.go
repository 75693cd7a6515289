package repository

import (
	"context"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/pkg/pagination"
)

// AuditRepository defines the interface for audit log data operations
type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.AuditLog, int64, error)
}
