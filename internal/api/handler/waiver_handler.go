package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// WaiverHandler range-use waivers
type WaiverHandler struct {
	waiverSvc service.WaiverService
}

// NewWaiverHandler creates a WaiverHandler.
func NewWaiverHandler(waiverSvc service.WaiverService) *WaiverHandler {
	return &WaiverHandler{waiverSvc: waiverSvc}
}

// Create is public; guests sign at the kiosk
// POST /api/v1/waivers
func (h *WaiverHandler) Create(c *gin.Context) {
	var req dto.CreateWaiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	waiver, err := h.waiverSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleWaiverError(c, err)
		return
	}

	response.Created(c, waiver)
}

// List GET /api/v1/waivers?date=&status=
func (h *WaiverHandler) List(c *gin.Context) {
	var req dto.WaiverListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, err := h.waiverSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleWaiverError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CheckOut POST /api/v1/waivers/:id/check-out
func (h *WaiverHandler) CheckOut(c *gin.Context) {
	waiver, err := h.waiverSvc.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleWaiverError(c, err)
		return
	}
	response.OK(c, waiver)
}

func (h *WaiverHandler) handleWaiverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWaiverNotFound):
		response.NotFound(c, 21001, "waiver not found")
	case errors.Is(err, service.ErrWaiverNotAgreed):
		response.BadRequest(c, 21002, "the waiver terms must be accepted")
	case errors.Is(err, service.ErrWaiverUnderage):
		response.BadRequest(c, 21003, "range guests must be at least 18 years old")
	case errors.Is(err, service.ErrWaiverCheckedOut):
		response.Conflict(c, 21004, "waiver is already checked out")
	default:
		if !writeDateError(c, err) {
			response.InternalError(c)
		}
	}
}
