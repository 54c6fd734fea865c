package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// InventoryHandler partner inventory lookups
type InventoryHandler struct {
	inventorySvc service.InventoryService
}

// NewInventoryHandler creates an InventoryHandler.
func NewInventoryHandler(inventorySvc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc}
}

// Search GET /api/v1/inventory/search?q=&limit=
func (h *InventoryHandler) Search(c *gin.Context) {
	var req dto.InventorySearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	items, err := h.inventorySvc.Search(c.Request.Context(), &req)
	if err != nil {
		h.handleInventoryError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// GetBySKU GET /api/v1/inventory/items/:sku
func (h *InventoryHandler) GetBySKU(c *gin.Context) {
	item, err := h.inventorySvc.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.handleInventoryError(c, err)
		return
	}
	response.OK(c, item)
}

func (h *InventoryHandler) handleInventoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInventoryQueryTooShort):
		response.BadRequest(c, 24001, "search query must be at least 2 characters")
	case errors.Is(err, service.ErrInventoryItemNotFound):
		response.NotFound(c, 24002, "inventory item not found")
	case errors.Is(err, service.ErrInventoryUnavailable):
		response.BadGateway(c, 24003, "inventory partner is unavailable")
	default:
		response.InternalError(c)
	}
}
