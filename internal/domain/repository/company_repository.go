package repository

import (
	"context"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/pkg/pagination"
	"github.com/google/uuid"
)

// CompanyRepository defines the interface for issuing company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Company, int64, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}
