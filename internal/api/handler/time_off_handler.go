package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// TimeOffHandler time-off requests
type TimeOffHandler struct {
	timeOffSvc service.TimeOffService
}

// NewTimeOffHandler creates a TimeOffHandler.
func NewTimeOffHandler(timeOffSvc service.TimeOffService) *TimeOffHandler {
	return &TimeOffHandler{timeOffSvc: timeOffSvc}
}

// Submit POST /api/v1/time-off
func (h *TimeOffHandler) Submit(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.timeOffSvc.Submit(c.Request.Context(), employeeID, &req)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.Created(c, result)
}

// Mine GET /api/v1/time-off/me
func (h *TimeOffHandler) Mine(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.TimeOffListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.timeOffSvc.Mine(c.Request.Context(), employeeID, &req)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// List GET /api/v1/time-off
func (h *TimeOffHandler) List(c *gin.Context) {
	var req dto.TimeOffListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.timeOffSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Approve POST /api/v1/time-off/:id/approve
func (h *TimeOffHandler) Approve(c *gin.Context) {
	h.review(c, h.timeOffSvc.Approve)
}

// Deny POST /api/v1/time-off/:id/deny
func (h *TimeOffHandler) Deny(c *gin.Context) {
	h.review(c, h.timeOffSvc.Deny)
}

func (h *TimeOffHandler) review(c *gin.Context, decide func(ctx context.Context, id string, callerID int) (*dto.TimeOffResponse, error)) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := decide(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *TimeOffHandler) handleTimeOffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimeOffNotFound):
		response.NotFound(c, 15001, "time-off request not found")
	case errors.Is(err, service.ErrTimeOffNotPending):
		response.Conflict(c, 15002, "only pending requests can be reviewed")
	case errors.Is(err, service.ErrTimeOffNoticeTooLate):
		response.BadRequest(c, 15003, "time-off request does not meet the minimum notice")
	case errors.Is(err, service.ErrTimeOffConflict):
		response.Conflict(c, 15004, "time-off request was modified concurrently")
	default:
		if !writeDateError(c, err) {
			response.InternalError(c)
		}
	}
}
