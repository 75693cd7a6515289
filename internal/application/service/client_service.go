package service

import (
	"context"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/repository"
	"github.com/dsouzac/quotify-api/pkg/apperror"
	"github.com/dsouzac/quotify-api/pkg/pagination"
	"github.com/google/uuid"
)

// ClientService manages the client directory
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientRequest represents the input for creating a client
type CreateClientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
}

// UpdateClientRequest represents the input for updating a client
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
}

// Create registers a new client
func (s *ClientService) Create(ctx context.Context, req *CreateClientRequest) (*entity.Client, error) {
	client := &entity.Client{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Get returns a client by ID
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// List returns clients matching the optional search term
func (s *ClientService) List(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(clients, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// Update modifies an existing client
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *UpdateClientRequest) (*entity.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Address != nil {
		client.Address = req.Address
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}
