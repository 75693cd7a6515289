package service

import (
	"context"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/repository"
	"github.com/dsouzac/quotify-api/pkg/apperror"
	"github.com/dsouzac/quotify-api/pkg/pagination"
	"github.com/google/uuid"
)

// CompanyService manages issuing companies
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CreateCompanyRequest represents the input for creating a company
type CreateCompanyRequest struct {
	Name    string  `json:"name" binding:"required"`
	TaxID   *string `json:"tax_id"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UpdateCompanyRequest represents the input for updating a company
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	TaxID   *string `json:"tax_id"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// Create registers a new company
func (s *CompanyService) Create(ctx context.Context, req *CreateCompanyRequest) (*entity.Company, error) {
	company := &entity.Company{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Get returns a company by ID
func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// List returns all companies
func (s *CompanyService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Company], error) {
	companies, total, err := s.companyRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(companies, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// Update modifies an existing company
func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, req *UpdateCompanyRequest) (*entity.Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.TaxID != nil {
		company.TaxID = req.TaxID
	}
	if req.Email != nil {
		company.Email = req.Email
	}
	if req.Phone != nil {
		company.Phone = req.Phone
	}
	if req.Address != nil {
		company.Address = req.Address
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.companyRepo.Delete(ctx, id)
}
