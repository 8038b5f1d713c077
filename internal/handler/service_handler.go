package handler

import (
	"net/http"

	"github.com/asadtechlead/precise-price-print/internal/middleware"
	"github.com/asadtechlead/precise-price-print/internal/service"
	"github.com/asadtechlead/precise-price-print/pkg/pagination"
	"github.com/asadtechlead/precise-price-print/pkg/response"

	"github.com/gin-gonic/gin"
)

// ServiceHandler exposes the hourly-rate service catalog.
type ServiceHandler struct {
	catalogService service.CatalogService
}

func NewServiceHandler(catalogService service.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService}
}

func (h *ServiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	services := router.Group("/api/services", middleware.RequireAuth())
	{
		services.POST("", h.CreateService)
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}
}

// CreateService creates a new service
// @Summary      Create service
// @Tags         services
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateServiceRequest  true  "Create Service Payload"
// @Success      201      {object}  response.Response{data=model.Service}
// @Failure      400      {object}  response.Response
// @Router       /api/services [post]
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req service.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, svc))
}

// ListServices returns a paginated list of services
// @Summary      List services
// @Tags         services
// @Security     BearerAuth
// @Produce      json
// @Param        search  query     string  false  "Partial match on name or category"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=[]model.Service}
// @Failure      500     {object}  response.Response
// @Router       /api/services [get]
func (h *ServiceHandler) ListServices(c *gin.Context) {
	params := pagination.Parse(c)

	services, total, err := h.catalogService.ListServices(c.Request.Context(), middleware.UserID(c), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, services, params.Page, params.Limit, total))
}

// GetService returns a single service by ID
// @Summary      Get service
// @Tags         services
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  response.Response{data=model.Service}
// @Failure      404  {object}  response.Response
// @Router       /api/services/{id} [get]
func (h *ServiceHandler) GetService(c *gin.Context) {
	svc, err := h.catalogService.GetService(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		status := errStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, svc))
}

// UpdateService updates a service
// @Summary      Update service
// @Tags         services
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Service ID"
// @Param        payload  body      service.UpdateServiceRequest  true  "Update Service Payload"
// @Success      200      {object}  response.Response{data=model.Service}
// @Failure      400      {object}  response.Response
// @Router       /api/services/{id} [put]
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	var req service.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		status := errStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, svc))
}

// DeleteService deletes a service
// @Summary      Delete service
// @Tags         services
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/services/{id} [delete]
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	if err := h.catalogService.DeleteService(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		status := errStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
