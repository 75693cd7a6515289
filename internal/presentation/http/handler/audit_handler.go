package handler

import (
	"github.com/dsouzac/quotify-api/internal/application/service"
	"github.com/dsouzac/quotify-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AuditHandler handles the audit log listing
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List handles listing audit entries, newest first
// @Summary List Audit Log
// @Tags audit
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	result, err := h.auditService.List(c.Request.Context(), parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Audit log retrieved successfully", result)
}
