package repository

import (
	"context"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/pkg/pagination"
	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create persists the sale and its item snapshots in one transaction.
	// It returns gorm.ErrDuplicatedKey when another sale already references
	// the same quote.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByQuoteID(ctx context.Context, quoteID uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
}
