package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler spreadsheet downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// AuditSummary GET /api/v1/export/audit-summary?start=&end=
func (h *ExportHandler) AuditSummary(c *gin.Context) {
	var req dto.AuditSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.AuditSummary(c.Request.Context(), &req)
	h.send(c, buf, filename, err)
}

// WeeklySchedule GET /api/v1/export/schedule?start=&department=
func (h *ExportHandler) WeeklySchedule(c *gin.Context) {
	var req dto.CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.WeeklySchedule(c.Request.Context(), &req)
	h.send(c, buf, filename, err)
}

func (h *ExportHandler) send(c *gin.Context, buf *bytes.Buffer, filename string, err error) {
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	c.Header("Content-Description", "File Transfer")
	response.File(c, xlsxContentType, url.PathEscape(filename), buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 26001, "failed to generate the spreadsheet")
	default:
		if !writeDateError(c, err) {
			response.InternalError(c)
		}
	}
}
