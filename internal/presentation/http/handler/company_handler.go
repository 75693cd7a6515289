package handler

import (
	"github.com/dsouzac/quotify-api/internal/application/service"
	"github.com/dsouzac/quotify-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler handles issuing company HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create handles company creation
// @Summary Create Company
// @Tags companies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req service.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Company created successfully", company)
}

// Get handles getting a single company
// @Summary Get Company
// @Tags companies
// @Security BearerAuth
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} response.APIResponse
// @Router /companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	company, err := h.companyService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", company)
}

// List handles listing companies
// @Summary List Companies
// @Tags companies
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	result, err := h.companyService.List(c.Request.Context(), parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Companies retrieved successfully", result)
}

// Update handles updating a company
// @Summary Update Company
// @Tags companies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} response.APIResponse
// @Router /companies/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	var req service.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company updated successfully", company)
}

// Delete handles deleting a company
// @Summary Delete Company
// @Tags companies
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 204
// @Router /companies/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
