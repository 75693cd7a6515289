package service

import (
	"context"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/repository"
	"github.com/dsouzac/quotify-api/pkg/apperror"
	"github.com/dsouzac/quotify-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService manages the catalog of sellable services. Price changes
// here never touch existing quote items or sales; those hold snapshots.
type CatalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// CreateServiceRequest represents the input for creating a catalog service
type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateServiceRequest represents the input for updating a catalog service
type UpdateServiceRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// Create adds a service to the catalog
func (s *CatalogService) Create(ctx context.Context, req *CreateServiceRequest) (*entity.Service, error) {
	if req.UnitPrice.IsNegative() {
		return nil, apperror.NewValidationError("Unit price cannot be negative")
	}

	svc := &entity.Service{
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Get returns a catalog service by ID
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

// List returns catalog services matching the optional search term
func (s *CatalogService) List(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Service], error) {
	services, total, err := s.serviceRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(services, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// Update modifies a catalog service
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req *UpdateServiceRequest) (*entity.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, apperror.NewValidationError("Unit price cannot be negative")
		}
		svc.UnitPrice = *req.UnitPrice
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Delete removes a service from the catalog
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}
