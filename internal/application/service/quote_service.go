package service

import (
	"context"
	"fmt"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	"github.com/dsouzac/quotify-api/internal/domain/enum"
	"github.com/dsouzac/quotify-api/internal/domain/repository"
	"github.com/dsouzac/quotify-api/pkg/apperror"
	"github.com/dsouzac/quotify-api/pkg/email"
	"github.com/dsouzac/quotify-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteService implements the quote lifecycle: bulk creation, incremental
// item editing while Building, finalization, and status management.
type QuoteService struct {
	quoteRepo    repository.QuoteRepository
	serviceRepo  repository.ServiceRepository
	clientRepo   repository.ClientRepository
	companyRepo  repository.CompanyRepository
	auditService *AuditService
	emailService *email.EmailService
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	serviceRepo repository.ServiceRepository,
	clientRepo repository.ClientRepository,
	companyRepo repository.CompanyRepository,
	auditService *AuditService,
	emailService *email.EmailService,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		serviceRepo:  serviceRepo,
		clientRepo:   clientRepo,
		companyRepo:  companyRepo,
		auditService: auditService,
		emailService: emailService,
	}
}

// QuoteItemInput is one (service, quantity) entry in a bulk create request.
// Quantity is validated in the service so non-positive values surface as
// validation errors rather than binding failures.
type QuoteItemInput struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// CreateQuoteRequest represents the input for bulk quote creation
type CreateQuoteRequest struct {
	ClientID  uuid.UUID        `json:"client_id" binding:"required"`
	CompanyID *uuid.UUID       `json:"company_id"`
	Items     []QuoteItemInput `json:"items" binding:"required"`
}

// StartQuoteRequest represents the input for starting an empty quote
type StartQuoteRequest struct {
	ClientID  uuid.UUID  `json:"client_id" binding:"required"`
	CompanyID *uuid.UUID `json:"company_id"`
}

// QuoteStatusRequest represents a status update by name
type QuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// QuoteEmailRequest represents the input for emailing a quote summary
type QuoteEmailRequest struct {
	Recipients []string `json:"recipients" binding:"required,min=1,dive,email"`
	Message    string   `json:"message"`
}

// QuoteFilter carries the optional list filters
type QuoteFilter struct {
	Status   *enum.QuoteStatus
	ClientID *uuid.UUID
}

// Create builds a quote from a batch of items and places it directly in
// Pending status. Entries repeating a service id are grouped first, summing
// quantities, so each distinct service is priced exactly once per request.
func (s *QuoteService) Create(ctx context.Context, userID uuid.UUID, req *CreateQuoteRequest) (*entity.Quote, error) {
	if len(req.Items) == 0 {
		return nil, apperror.NewValidationError("Quote requires at least one item")
	}

	if err := s.resolveClient(ctx, req.ClientID); err != nil {
		return nil, err
	}
	if err := s.resolveCompany(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	// group duplicate service ids before any price lookup, preserving the
	// order in which each service first appeared
	quantities := make(map[uuid.UUID]int, len(req.Items))
	order := make([]uuid.UUID, 0, len(req.Items))
	for _, in := range req.Items {
		if in.Quantity < 1 {
			return nil, apperror.NewValidationError("Quantity must be a positive integer")
		}
		if _, seen := quantities[in.ServiceID]; !seen {
			order = append(order, in.ServiceID)
		}
		quantities[in.ServiceID] += in.Quantity
	}

	services, err := s.serviceRepo.GetByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	priced := make(map[uuid.UUID]*entity.Service, len(services))
	for i := range services {
		priced[services[i].ID] = &services[i]
	}

	quote := &entity.Quote{
		ID:        uuid.New(),
		ClientID:  req.ClientID,
		UserID:    userID,
		CompanyID: req.CompanyID,
		Status:    enum.QuoteStatusPending,
	}

	total := decimal.Zero
	for _, serviceID := range order {
		svc, ok := priced[serviceID]
		if !ok {
			return nil, apperror.NewNotFoundError("Service")
		}
		item := entity.QuoteItem{
			QuoteID:   quote.ID,
			ServiceID: serviceID,
			Quantity:  quantities[serviceID],
			UnitPrice: svc.UnitPrice,
		}
		item.Recalculate()
		total = total.Add(item.SubTotal)
		quote.Items = append(quote.Items, item)
	}
	quote.TotalAmount = total

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	s.auditService.Record(userID, fmt.Sprintf("Created quote %s", quote.ID))
	return quote, nil
}

// StartBuilding creates an empty quote in Building status so items can be
// added one at a time.
func (s *QuoteService) StartBuilding(ctx context.Context, userID uuid.UUID, req *StartQuoteRequest) (*entity.Quote, error) {
	if err := s.resolveClient(ctx, req.ClientID); err != nil {
		return nil, err
	}
	if err := s.resolveCompany(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	quote := &entity.Quote{
		ID:          uuid.New(),
		ClientID:    req.ClientID,
		UserID:      userID,
		CompanyID:   req.CompanyID,
		TotalAmount: decimal.Zero,
		Status:      enum.QuoteStatusBuilding,
	}
	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	s.auditService.Record(userID, fmt.Sprintf("Started quote %s", quote.ID))
	return quote, nil
}

// AddItem adds quantity of a service to a Building quote. If the quote
// already carries an item for that service the quantity is added onto it and
// the existing price snapshot is kept; a new item snapshots the service's
// current catalog price.
func (s *QuoteService) AddItem(ctx context.Context, userID, quoteID, serviceID uuid.UUID, quantity int) (*entity.Quote, error) {
	quote, err := s.requireBuilding(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, apperror.NewValidationError("Quantity must be a positive integer")
	}

	item, err := s.quoteRepo.GetItem(ctx, quoteID, serviceID)
	if err != nil {
		return nil, err
	}
	if item != nil {
		item.Quantity += quantity
		item.Recalculate()
	} else {
		svc, err := s.serviceRepo.GetByID(ctx, serviceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, apperror.NewNotFoundError("Service")
		}
		item = &entity.QuoteItem{
			QuoteID:   quoteID,
			ServiceID: serviceID,
			Quantity:  quantity,
			UnitPrice: svc.UnitPrice,
		}
		item.Recalculate()
	}

	if err := s.writeItem(ctx, quote, item); err != nil {
		return nil, err
	}

	s.auditService.Record(userID, fmt.Sprintf("Added item to quote %s", quoteID))
	return s.quoteRepo.GetWithItems(ctx, quoteID)
}

// RemoveItem deletes a service's line item from a Building quote
func (s *QuoteService) RemoveItem(ctx context.Context, userID, quoteID, serviceID uuid.UUID) (*entity.Quote, error) {
	quote, err := s.requireBuilding(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	item, err := s.quoteRepo.GetItem(ctx, quoteID, serviceID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Quote item")
	}

	items, err := s.quoteRepo.GetItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for i := range items {
		if items[i].ServiceID == serviceID {
			continue
		}
		total = total.Add(items[i].SubTotal)
	}
	quote.TotalAmount = total

	if err := s.quoteRepo.RemoveItem(ctx, quote, item); err != nil {
		return nil, err
	}

	s.auditService.Record(userID, fmt.Sprintf("Removed item from quote %s", quoteID))
	return s.quoteRepo.GetWithItems(ctx, quoteID)
}

// SetItemQuantity replaces a line item's quantity and recomputes its
// subtotal against the existing price snapshot
func (s *QuoteService) SetItemQuantity(ctx context.Context, userID, quoteID, serviceID uuid.UUID, quantity int) (*entity.Quote, error) {
	quote, err := s.requireBuilding(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, apperror.NewValidationError("Quantity must be a positive integer")
	}

	item, err := s.quoteRepo.GetItem(ctx, quoteID, serviceID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Quote item")
	}

	item.Quantity = quantity
	item.Recalculate()

	if err := s.writeItem(ctx, quote, item); err != nil {
		return nil, err
	}

	s.auditService.Record(userID, fmt.Sprintf("Updated item quantity on quote %s", quoteID))
	return s.quoteRepo.GetWithItems(ctx, quoteID)
}

// Finalize moves a Building quote with at least one item to Pending. Item
// mutation is no longer permitted afterwards.
func (s *QuoteService) Finalize(ctx context.Context, userID, quoteID uuid.UUID) (*entity.Quote, error) {
	quote, err := s.requireBuilding(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	items, err := s.quoteRepo.GetItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewValidationError("Cannot finalize an empty quote")
	}

	if err := s.quoteRepo.UpdateStatus(ctx, quoteID, enum.QuoteStatusPending); err != nil {
		return nil, err
	}
	quote.Status = enum.QuoteStatusPending

	s.auditService.Record(userID, fmt.Sprintf("Finalized quote %s", quoteID))
	return s.quoteRepo.GetWithItems(ctx, quoteID)
}

// SetStatus reassigns the status of a quote that has left the building
// phase. The target must be one of the four assignable states and the
// transition must be permitted by the guard table.
func (s *QuoteService) SetStatus(ctx context.Context, userID, quoteID uuid.UUID, target enum.QuoteStatus) (*entity.Quote, error) {
	if !target.IsAssignable() {
		return nil, apperror.NewValidationError("Invalid quote status")
	}

	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	// Building is left only through Finalize, which enforces the
	// at-least-one-item guard; a direct status write would skip it
	if quote.Status == enum.QuoteStatusBuilding {
		return nil, apperror.NewInvalidStateError("Quote is still being built; finalize it first")
	}

	if !quote.Status.CanTransitionTo(target) {
		return nil, apperror.NewInvalidStateError(
			fmt.Sprintf("Cannot move quote from %s to %s", quote.Status, target))
	}

	if err := s.quoteRepo.UpdateStatus(ctx, quoteID, target); err != nil {
		return nil, err
	}

	s.auditService.Record(userID, fmt.Sprintf("Set quote %s status to %s", quoteID, target))
	return s.quoteRepo.GetWithItems(ctx, quoteID)
}

// Get returns a quote with its items
func (s *QuoteService) Get(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// List returns quotes matching the optional status and client filters
func (s *QuoteService) List(ctx context.Context, params *pagination.PaginationParams, filter *QuoteFilter) (*pagination.PaginatedResult[entity.Quote], error) {
	filterParams := &repository.QuoteFilterParams{Pagination: params}
	if filter != nil {
		filterParams.Status = filter.Status
		filterParams.ClientID = filter.ClientID
	}

	quotes, total, err := s.quoteRepo.List(ctx, filterParams)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(quotes, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// Delete removes a quote together with its items. Sales converted from it
// are untouched; their snapshots stand on their own.
func (s *QuoteService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}

	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditService.Record(userID, fmt.Sprintf("Deleted quote %s", id))
	return nil
}

// SendEmail delivers a quote summary to the given recipients
func (s *QuoteService) SendEmail(ctx context.Context, userID, quoteID uuid.UUID, req *QuoteEmailRequest) error {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return err
	}

	clientName := ""
	if quote.Client != nil {
		clientName = quote.Client.Name
	}

	data := email.QuoteEmailData{
		QuoteID:    quote.ID.String(),
		ClientName: clientName,
		Status:     quote.Status.String(),
		CreatedAt:  quote.CreatedAt.Format("2006-01-02"),
		Total:      quote.TotalAmount.StringFixed(2),
		Message:    req.Message,
	}
	for _, item := range quote.Items {
		line := email.QuoteEmailItem{
			ServiceName: item.Service.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			SubTotal:    item.SubTotal.StringFixed(2),
		}
		if item.Service.Description != nil {
			line.Description = *item.Service.Description
		}
		data.Items = append(data.Items, line)
	}

	if err := s.emailService.SendQuoteEmail(req.Recipients, data); err != nil {
		return err
	}

	s.auditService.Record(userID, fmt.Sprintf("Emailed quote %s", quoteID))
	return nil
}

// requireBuilding loads a quote and rejects the operation unless the quote
// is still in the building phase
func (s *QuoteService) requireBuilding(ctx context.Context, quoteID uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Status != enum.QuoteStatusBuilding {
		return nil, apperror.NewInvalidStateError("Quote items can only be changed while the quote is being built")
	}
	return quote, nil
}

// writeItem recomputes the quote total with the written item in place and
// persists item and total in one transaction
func (s *QuoteService) writeItem(ctx context.Context, quote *entity.Quote, item *entity.QuoteItem) error {
	items, err := s.quoteRepo.GetItems(ctx, quote.ID)
	if err != nil {
		return err
	}

	total := item.SubTotal
	for i := range items {
		if items[i].ServiceID == item.ServiceID {
			continue
		}
		total = total.Add(items[i].SubTotal)
	}
	quote.TotalAmount = total

	return s.quoteRepo.UpsertItem(ctx, quote, item)
}

func (s *QuoteService) resolveClient(ctx context.Context, clientID uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}
	return nil
}

func (s *QuoteService) resolveCompany(ctx context.Context, companyID *uuid.UUID) error {
	if companyID == nil {
		return nil
	}
	company, err := s.companyRepo.GetByID(ctx, *companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return apperror.NewNotFoundError("Company")
	}
	return nil
}
