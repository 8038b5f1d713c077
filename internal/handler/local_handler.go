package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/asadtechlead/precise-price-print/internal/localstore"
	"github.com/asadtechlead/precise-price-print/pkg/response"

	"github.com/gin-gonic/gin"
)

// LocalHandler backs guest-mode persistence: whole-collection JSON blobs
// keyed by a client-chosen device ID. No auth, the device ID is the scope.
type LocalHandler struct {
	store *localstore.Store
}

func NewLocalHandler(store *localstore.Store) *LocalHandler {
	return &LocalHandler{store: store}
}

func (h *LocalHandler) RegisterRoutes(router *gin.RouterGroup) {
	local := router.Group("/api/local")
	{
		local.GET("/:collection", h.GetCollection)
		local.PUT("/:collection", h.PutCollection)
	}
}

func deviceID(c *gin.Context) string {
	return c.GetHeader("X-Device-ID")
}

// GetCollection returns the stored JSON blob for one collection
// @Summary      Read guest collection
// @Tags         local
// @Produce      json
// @Param        collection   path    string  true  "Collection name (clients, products, services, invoices, currency)"
// @Param        X-Device-ID  header  string  true  "Guest device identifier"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/local/{collection} [get]
func (h *LocalHandler) GetCollection(c *gin.Context) {
	device := deviceID(c)
	if device == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "X-Device-ID header is required"))
		return
	}

	payload, err := h.store.Get(c.Request.Context(), device, c.Param("collection"))
	if err != nil {
		if errors.Is(err, localstore.ErrUnknownCollection) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	// Payload is already JSON; emit it raw instead of double-encoding.
	c.Header("Content-Type", "application/json")
	if payload == "" {
		payload = "null"
	}
	c.String(http.StatusOK, payload)
}

// PutCollection overwrites the stored JSON blob for one collection
// @Summary      Write guest collection
// @Tags         local
// @Accept       json
// @Produce      json
// @Param        collection   path    string  true  "Collection name (clients, products, services, invoices, currency)"
// @Param        X-Device-ID  header  string  true  "Guest device identifier"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/local/{collection} [put]
func (h *LocalHandler) PutCollection(c *gin.Context) {
	device := deviceID(c)
	if device == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "X-Device-ID header is required"))
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "failed to read body"))
		return
	}

	if err := h.store.Put(c.Request.Context(), device, c.Param("collection"), string(body)); err != nil {
		if errors.Is(err, localstore.ErrUnknownCollection) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"saved": true}))
}
