package repository

import (
	"context"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/pkg/pagination"
	"github.com/google/uuid"
)

// ServiceRepository defines the interface for catalog service data operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Service, int64, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}
