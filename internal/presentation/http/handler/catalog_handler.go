package handler

import (
	"github.com/dsouzac/quotify-api/internal/application/service"
	"github.com/dsouzac/quotify-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles service catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create handles adding a service to the catalog
// @Summary Create Service
// @Tags services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /services [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req service.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalogService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", svc)
}

// Get handles getting a single catalog service
// @Summary Get Service
// @Tags services
// @Security BearerAuth
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.APIResponse
// @Router /services/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", svc)
}

// List handles listing catalog services
// @Summary List Services
// @Tags services
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /services [get]
func (h *CatalogHandler) List(c *gin.Context) {
	result, err := h.catalogService.List(c.Request.Context(), parsePagination(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Services retrieved successfully", result)
}

// Update handles updating a catalog service
// @Summary Update Service
// @Tags services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.APIResponse
// @Router /services/{id} [put]
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req service.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalogService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated successfully", svc)
}

// Delete handles removing a service from the catalog
// @Summary Delete Service
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204
// @Router /services/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
