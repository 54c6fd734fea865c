package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// ScheduleHandler reference schedules, shifts and the week calendar
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListReference GET /api/v1/employees/:id/reference-schedule
func (h *ScheduleHandler) ListReference(c *gin.Context) {
	employeeID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	list, err := h.scheduleSvc.ListReference(c.Request.Context(), employeeID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// UpsertReference PUT /api/v1/employees/:id/reference-schedule
func (h *ScheduleHandler) UpsertReference(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	employeeID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req dto.UpsertReferenceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	ref, err := h.scheduleSvc.UpsertReference(c.Request.Context(), employeeID, &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, ref)
}

// Generate builds the missing shifts of the coming weeks
// POST /api/v1/schedules/generate
func (h *ScheduleHandler) Generate(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.GenerateShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.scheduleSvc.Generate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// Calendar GET /api/v1/schedules/calendar?start=YYYY-MM-DD
func (h *ScheduleHandler) Calendar(c *gin.Context) {
	var req dto.CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	cal, err := h.scheduleSvc.Calendar(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, cal)
}

// ListShifts GET /api/v1/shifts
func (h *ScheduleHandler) ListShifts(c *gin.Context) {
	var req dto.ShiftListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, err := h.scheduleSvc.ListShifts(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// MyShifts GET /api/v1/shifts/me
func (h *ScheduleHandler) MyShifts(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.ShiftListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}
	req.EmployeeID = employeeID

	list, err := h.scheduleSvc.ListShifts(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateShift POST /api/v1/shifts
func (h *ScheduleHandler) CreateShift(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	shift, err := h.scheduleSvc.CreateShift(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, shift)
}

// UpdateShift PUT /api/v1/shifts/:id
func (h *ScheduleHandler) UpdateShift(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	shift, err := h.scheduleSvc.UpdateShift(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, shift)
}

// MarkStatus records a call-out or early leave
// POST /api/v1/shifts/:id/status
func (h *ScheduleHandler) MarkStatus(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.ShiftStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	shift, err := h.scheduleSvc.MarkStatus(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, shift)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 14001, "shift not found")
	case errors.Is(err, service.ErrShiftExists):
		response.Conflict(c, 14002, "employee already has a shift on that date")
	case errors.Is(err, service.ErrShiftTimeInvalid):
		response.BadRequest(c, 14003, "shift end time must be after start time")
	case errors.Is(err, service.ErrReferenceTimeSplit):
		response.BadRequest(c, 14004, "start_time and end_time must be set together")
	case errors.Is(err, service.ErrShiftNotWorkday):
		response.BadRequest(c, 14005, "shift is not a working shift")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12001, "employee not found")
	default:
		if !writeDateError(c, err) {
			response.InternalError(c)
		}
	}
}
