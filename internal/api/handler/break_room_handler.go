package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// BreakRoomHandler weekly break-room duty
type BreakRoomHandler struct {
	breakRoomSvc service.BreakRoomService
}

// NewBreakRoomHandler creates a BreakRoomHandler.
func NewBreakRoomHandler(breakRoomSvc service.BreakRoomService) *BreakRoomHandler {
	return &BreakRoomHandler{breakRoomSvc: breakRoomSvc}
}

// Assign picks the duty for the week; repeat calls return the existing assignment
// POST /api/v1/break-room/assign
func (h *BreakRoomHandler) Assign(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.AssignDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	duty, err := h.breakRoomSvc.Assign(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDutyError(c, err)
		return
	}

	response.OK(c, duty)
}

// List GET /api/v1/break-room
func (h *BreakRoomHandler) List(c *gin.Context) {
	var req dto.DutyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.breakRoomSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleDutyError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Complete POST /api/v1/break-room/:id/complete
func (h *BreakRoomHandler) Complete(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	duty, err := h.breakRoomSvc.Complete(c.Request.Context(), c.Param("id"), callerID, IsPrivileged(role))
	if err != nil {
		h.handleDutyError(c, err)
		return
	}

	response.OK(c, duty)
}

func (h *BreakRoomHandler) handleDutyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDutyNotFound):
		response.NotFound(c, 16001, "break-room duty not found")
	case errors.Is(err, service.ErrDutyNotAssignee):
		response.Forbidden(c, 16002, "only the assigned employee or an admin can complete this duty")
	case errors.Is(err, service.ErrNoEligibleEmployee):
		response.Conflict(c, 16003, "no eligible employee for break-room duty this week")
	default:
		if !writeDateError(c, err) {
			response.InternalError(c)
		}
	}
}
