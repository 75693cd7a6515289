package repository

import (
	"context"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/enum"
	"github.com/dsouzac/quotify-api/pkg/pagination"
	"github.com/google/uuid"
)

// QuoteRepository defines the interface for quote data operations. Every
// method that touches more than one row commits as a single transaction, so
// a quote's total is never observable out of sync with its items.
type QuoteRepository interface {
	// Create persists the quote together with any items it carries.
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error
	// Delete removes the quote and all of its items.
	Delete(ctx context.Context, id uuid.UUID) error

	GetItem(ctx context.Context, quoteID, serviceID uuid.UUID) (*entity.QuoteItem, error)
	GetItems(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteItem, error)
	// UpsertItem writes the item and the quote's recomputed total atomically.
	UpsertItem(ctx context.Context, quote *entity.Quote, item *entity.QuoteItem) error
	// RemoveItem deletes the item and writes the recomputed total atomically.
	RemoveItem(ctx context.Context, quote *entity.Quote, item *entity.QuoteItem) error
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.QuoteStatus
	ClientID   *uuid.UUID
}
