package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// HolidayHandler store holidays
type HolidayHandler struct {
	holidaySvc service.HolidayService
	fetch      func(rawURL string) (io.ReadCloser, error)
}

// NewHolidayHandler creates a HolidayHandler.
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc, fetch: service.FetchICSContent}
}

// List GET /api/v1/holidays?year=
func (h *HolidayHandler) List(c *gin.Context) {
	var req dto.HolidayListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, err := h.holidaySvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Create POST /api/v1/holidays
func (h *HolidayHandler) Create(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	holiday, err := h.holidaySvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.Created(c, holiday)
}

// Delete DELETE /api/v1/holidays/:id
func (h *HolidayHandler) Delete(c *gin.Context) {
	if err := h.holidaySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, nil)
}

// Import loads an iCalendar file.
// POST /api/v1/holidays/import
//
// Either a multipart upload (field "file") or a JSON body {"url": "..."}.
func (h *HolidayHandler) Import(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		h.runImport(c, file, callerID)
		return
	}

	var req dto.ImportHolidayURLRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 22004, "upload an .ics file or provide a calendar url")
		return
	}

	body, err := h.fetch(req.URL)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 22005, "calendar url could not be fetched", err.Error())
		return
	}
	defer body.Close()

	h.runImport(c, body, callerID)
}

func (h *HolidayHandler) runImport(c *gin.Context, r io.Reader, callerID int) {
	result, err := h.holidaySvc.Import(c.Request.Context(), r, callerID)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *HolidayHandler) handleHolidayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHolidayNotFound):
		response.NotFound(c, 22001, "holiday not found")
	case errors.Is(err, service.ErrHolidayExists):
		response.Conflict(c, 22002, "a holiday already exists on that date")
	case errors.Is(err, service.ErrHolidayCalendarInvalid):
		response.BadRequest(c, 22003, "calendar file could not be parsed")
	default:
		if !writeDateError(c, err) {
			response.InternalError(c)
		}
	}
}
