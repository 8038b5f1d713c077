package handler

import (
	"net/http"

	"github.com/asadtechlead/precise-price-print/internal/middleware"
	"github.com/asadtechlead/precise-price-print/internal/service"
	"github.com/asadtechlead/precise-price-print/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/dashboard", middleware.RequireAuth(), h.GetStats)
	router.GET("/api/analytics", middleware.RequireAuth(), h.GetAnalytics)
}

// GetStats returns the dashboard status-bucket totals
// @Summary      Dashboard stats
// @Description  Totals bucketed by invoice status, recomputed on every call
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=billing.DashboardStats}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetAnalytics returns the full report: stats, status counts, revenue trend and rankings
// @Summary      Analytics report
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=billing.Report}
// @Failure      500  {object}  response.Response
// @Router       /api/analytics [get]
func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	report, err := h.dashboardService.GetAnalytics(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}
