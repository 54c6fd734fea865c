package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// AcquisitionHandler FFL acquisitions booked through FastBound
type AcquisitionHandler struct {
	acquisitionSvc service.AcquisitionService
}

// NewAcquisitionHandler creates an AcquisitionHandler.
func NewAcquisitionHandler(acquisitionSvc service.AcquisitionService) *AcquisitionHandler {
	return &AcquisitionHandler{acquisitionSvc: acquisitionSvc}
}

// Acquire POST /api/v1/acquisitions
func (h *AcquisitionHandler) Acquire(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateAcquisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.acquisitionSvc.Acquire(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAcquisitionError(c, err)
		return
	}

	response.Created(c, result)
}

// List GET /api/v1/acquisitions
func (h *AcquisitionHandler) List(c *gin.Context) {
	var req dto.AcquisitionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.acquisitionSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAcquisitionError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

func (h *AcquisitionHandler) handleAcquisitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFastBoundUnavailable):
		response.Error(c, http.StatusServiceUnavailable, 25001, "FastBound is not configured")
	case errors.Is(err, service.ErrAcquisitionRejected):
		response.BadGateway(c, 25002, "FastBound rejected the acquisition")
	default:
		if !writeDateError(c, err) {
			response.InternalError(c)
		}
	}
}
