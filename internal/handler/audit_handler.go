package handler

import (
	"net/http"

	"github.com/asadtechlead/precise-price-print/internal/middleware"
	"github.com/asadtechlead/precise-price-print/internal/service"
	"github.com/asadtechlead/precise-price-print/pkg/pagination"
	"github.com/asadtechlead/precise-price-print/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/audit-logs", middleware.RequireAuth(), h.ListAuditLogs)
}

// ListAuditLogs returns a paginated audit trail for the caller
// @Summary      List audit logs
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        action  query     string  false  "Filter by action code"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=[]model.AuditLog}
// @Failure      500     {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.auditService.ListAuditLogs(c.Request.Context(), middleware.UserID(c), c.Query("action"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, entries, params.Page, params.Limit, total))
}
