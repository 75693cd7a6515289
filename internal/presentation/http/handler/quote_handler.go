package handler

import (
	"github.com/dsouzac/quotify-api/internal/application/service"
	"github.com/dsouzac/quotify-api/internal/domain/enum"
	"github.com/dsouzac/quotify-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuoteHandler handles quote lifecycle HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
	saleService  *service.SaleService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, saleService *service.SaleService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		saleService:  saleService,
	}
}

// QuoteItemBody represents a single-item mutation request body
type QuoteItemBody struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// Create handles bulk quote creation
// @Summary Create Quote
// @Description Create a quote from a batch of items, placed directly in Pending status
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req service.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), *userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// Start handles starting an empty quote in Building status
// @Summary Start Quote
// @Description Create an empty quote that items can be added to incrementally
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /quotes/start [post]
func (h *QuoteHandler) Start(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req service.StartQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quote, err := h.quoteService.StartBuilding(c.Request.Context(), *userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote started successfully", quote)
}

// Get handles getting a single quote with its items
// @Summary Get Quote
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// List handles listing quotes
// @Summary List Quotes
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query string false "Status filter"
// @Param client_id query string false "Client filter"
// @Success 200 {object} response.APIResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	filter := &service.QuoteFilter{}

	if s := c.Query("status"); s != "" {
		status, ok := enum.ParseQuoteStatus(s)
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Status = &status
	}

	if cid := c.Query("client_id"); cid != "" {
		clientID, err := uuid.Parse(cid)
		if err != nil {
			response.BadRequest(c, "Invalid client filter")
			return
		}
		filter.ClientID = &clientID
	}

	result, err := h.quoteService.List(c.Request.Context(), parsePagination(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// AddItem handles adding a service to a building quote
// @Summary Add Quote Item
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/items [post]
func (h *QuoteHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var body QuoteItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quote, err := h.quoteService.AddItem(c.Request.Context(), *userID, id, body.ServiceID, body.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added successfully", quote)
}

// SetItemQuantity handles replacing a line item's quantity
// @Summary Set Quote Item Quantity
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param serviceId path string true "Service ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/items/{serviceId} [put]
func (h *QuoteHandler) SetItemQuantity(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}
	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quote, err := h.quoteService.SetItemQuantity(c.Request.Context(), *userID, id, serviceID, body.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item quantity updated successfully", quote)
}

// RemoveItem handles removing a service from a building quote
// @Summary Remove Quote Item
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Param serviceId path string true "Service ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/items/{serviceId} [delete]
func (h *QuoteHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}
	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	quote, err := h.quoteService.RemoveItem(c.Request.Context(), *userID, id, serviceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed successfully", quote)
}

// Finalize handles moving a building quote to Pending
// @Summary Finalize Quote
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/finalize [post]
func (h *QuoteHandler) Finalize(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.Finalize(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote finalized successfully", quote)
}

// SetStatus handles reassigning a quote's status
// @Summary Set Quote Status
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/status [patch]
func (h *QuoteHandler) SetStatus(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req service.QuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	status, ok := enum.ParseQuoteStatus(req.Status)
	if !ok {
		response.ErrorWithCode(c, 422, "Invalid quote status")
		return
	}

	quote, err := h.quoteService.SetStatus(c.Request.Context(), *userID, id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated successfully", quote)
}

// Convert handles converting an approved quote into a sale. A conflict
// returns 409 together with the previously created sale.
// @Summary Convert Quote to Sale
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 201 {object} response.APIResponse
// @Router /quotes/{id}/convert [post]
func (h *QuoteHandler) Convert(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	sale, err := h.saleService.ConvertQuote(c.Request.Context(), *userID, id)
	if err != nil {
		if sale != nil {
			response.ErrorWithData(c, err, sale)
			return
		}
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote converted to sale successfully", sale)
}

// SendEmail handles emailing a quote summary
// @Summary Email Quote
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/email [post]
func (h *QuoteHandler) SendEmail(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req service.QuoteEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.quoteService.SendEmail(c.Request.Context(), *userID, id, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote email sent successfully", nil)
}

// Delete handles deleting a quote and its items
// @Summary Delete Quote
// @Tags quotes
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 204
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
