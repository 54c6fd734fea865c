package handler

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

const salesUploadMaxBytes = 20 << 20

// SalesHandler sales spreadsheet import
type SalesHandler struct {
	salesSvc service.SalesService
}

// NewSalesHandler creates a SalesHandler.
func NewSalesHandler(salesSvc service.SalesService) *SalesHandler {
	return &SalesHandler{salesSvc: salesSvc}
}

// Import multipart upload, field "file", .xlsx only
// POST /api/v1/sales/import
func (h *SalesHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 18005, "file is required")
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		response.BadRequest(c, 18001, "only .xlsx files are accepted")
		return
	}
	if fh.Size > salesUploadMaxBytes {
		response.BadRequest(c, 18004, "sales file is too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	result, err := h.salesSvc.Import(c.Request.Context(), f)
	if err != nil {
		h.handleSalesError(c, err)
		return
	}

	response.OK(c, result)
}

// List GET /api/v1/sales
func (h *SalesHandler) List(c *gin.Context) {
	var req dto.SalesListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.salesSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleSalesError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

func (h *SalesHandler) handleSalesError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSalesFileInvalid):
		response.BadRequest(c, 18001, "sales file could not be read as .xlsx")
	case errors.Is(err, service.ErrSalesFileEmpty):
		response.BadRequest(c, 18002, "sales file has no data rows")
	case errors.Is(err, service.ErrSalesHeaderMissing):
		response.BadRequest(c, 18003, err.Error())
	case errors.Is(err, service.ErrSalesFileTooLarge):
		response.BadRequest(c, 18004, "sales file has too many rows")
	default:
		if !writeDateError(c, err) {
			response.InternalError(c)
		}
	}
}
