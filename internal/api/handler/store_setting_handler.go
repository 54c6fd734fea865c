package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// StoreSettingHandler store-wide settings
type StoreSettingHandler struct {
	settingSvc service.StoreSettingService
}

// NewStoreSettingHandler creates a StoreSettingHandler.
func NewStoreSettingHandler(settingSvc service.StoreSettingService) *StoreSettingHandler {
	return &StoreSettingHandler{settingSvc: settingSvc}
}

// Get GET /api/v1/settings
func (h *StoreSettingHandler) Get(c *gin.Context) {
	settings, err := h.settingSvc.Get(c.Request.Context())
	if err != nil {
		h.handleSettingError(c, err)
		return
	}
	response.OK(c, settings)
}

// Update PUT /api/v1/settings
func (h *StoreSettingHandler) Update(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.UpdateStoreSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	settings, err := h.settingSvc.Update(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSettingError(c, err)
		return
	}
	response.OK(c, settings)
}

func (h *StoreSettingHandler) handleSettingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStoreSettingsMissing):
		response.NotFound(c, 13001, "store settings are not initialized")
	default:
		response.InternalError(c)
	}
}
