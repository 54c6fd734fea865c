package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// DrosHandler DROS transfer records
type DrosHandler struct {
	drosSvc service.DrosService
}

// NewDrosHandler creates a DrosHandler.
func NewDrosHandler(drosSvc service.DrosService) *DrosHandler {
	return &DrosHandler{drosSvc: drosSvc}
}

// Create POST /api/v1/dros
func (h *DrosHandler) Create(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateDrosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	rec, err := h.drosSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDrosError(c, err)
		return
	}

	response.Created(c, rec)
}

// List GET /api/v1/dros
func (h *DrosHandler) List(c *gin.Context) {
	var req dto.DrosListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.drosSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleDrosError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get GET /api/v1/dros/:id
func (h *DrosHandler) Get(c *gin.Context) {
	rec, err := h.drosSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDrosError(c, err)
		return
	}
	response.OK(c, rec)
}

// Release POST /api/v1/dros/:id/release
func (h *DrosHandler) Release(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	rec, err := h.drosSvc.Release(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.handleDrosError(c, err)
		return
	}

	response.OK(c, rec)
}

// Cancel POST /api/v1/dros/:id/cancel
func (h *DrosHandler) Cancel(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CancelDrosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	rec, err := h.drosSvc.Cancel(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleDrosError(c, err)
		return
	}

	response.OK(c, rec)
}

func (h *DrosHandler) handleDrosError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDrosNotFound):
		response.NotFound(c, 23001, "DROS record not found")
	case errors.Is(err, service.ErrDrosNumberExists):
		response.Conflict(c, 23002, "DROS number already recorded")
	case errors.Is(err, service.ErrDrosNotSubmitted):
		response.Conflict(c, 23003, "only submitted DROS records can change status")
	case errors.Is(err, service.ErrDrosWaitingPeriod):
		response.BadRequest(c, 23004, "the waiting period has not elapsed")
	case errors.Is(err, service.ErrDrosVersionStale):
		response.Conflict(c, 23005, "DROS record was modified by someone else, reload and retry")
	case errors.Is(err, service.ErrSalespersonUnknown):
		response.BadRequest(c, 23006, "salesperson not found")
	default:
		if !writeDateError(c, err) {
			response.InternalError(c)
		}
	}
}
