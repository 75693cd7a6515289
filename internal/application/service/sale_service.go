package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/enum"
	"github.com/dsouzac/quotify-api/internal/domain/repository"
	"github.com/dsouzac/quotify-api/pkg/apperror"
	"github.com/dsouzac/quotify-api/pkg/pagination"
	"github.com/dsouzac/quotify-api/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleService converts approved quotes into immutable sales and exposes the
// read-only sales surface.
type SaleService struct {
	saleRepo     repository.SaleRepository
	quoteRepo    repository.QuoteRepository
	auditService *AuditService
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	quoteRepo repository.QuoteRepository,
	auditService *AuditService,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		quoteRepo:    quoteRepo,
		auditService: auditService,
	}
}

// ConvertQuote promotes an approved quote into a sale, snapshotting every
// line item. A quote converts at most once: on conflict the existing sale is
// returned alongside the ConflictError so callers can surface it.
func (s *SaleService) ConvertQuote(ctx context.Context, userID, quoteID uuid.UUID) (*entity.Sale, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Status != enum.QuoteStatusApproved {
		return nil, apperror.NewInvalidStateError("Only approved quotes can be converted to a sale")
	}

	// optimistic check; the unique index on sales.quote_id is the
	// authoritative guard against concurrent conversions
	existing, err := s.saleRepo.GetByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, apperror.NewConflictError("Quote has already been converted to a sale")
	}

	code, err := utils.GenerateSaleCode()
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		ID:          uuid.New(),
		QuoteID:     quote.ID,
		ClientID:    quote.ClientID,
		UserID:      quote.UserID,
		Code:        code,
		TotalAmount: quote.TotalAmount,
		SaleDate:    time.Now().UTC(),
	}
	for _, item := range quote.Items {
		sale.Items = append(sale.Items, entity.SaleItem{
			SaleID:    sale.ID,
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			SubTotal:  item.SubTotal,
		})
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, readErr := s.saleRepo.GetByQuoteID(ctx, quoteID)
			if readErr != nil {
				return nil, readErr
			}
			return winner, apperror.NewConflictError("Quote has already been converted to a sale")
		}
		return nil, err
	}

	s.auditService.Record(userID, fmt.Sprintf("Converted quote %s to sale %s", quoteID, sale.Code))
	return sale, nil
}

// Get returns a sale with its item snapshots
func (s *SaleService) Get(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetByQuote returns the sale converted from the given quote, if any
func (s *SaleService) GetByQuote(ctx context.Context, quoteID uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// List returns sales, newest first
func (s *SaleService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
