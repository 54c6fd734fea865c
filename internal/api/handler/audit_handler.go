package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// AuditHandler DROS audits, point rules and the points summary
type AuditHandler struct {
	auditSvc service.AuditService
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

// Create stores one row per error location
// POST /api/v1/audits
func (h *AuditHandler) Create(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	rows, err := h.auditSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAuditError(c, err)
		return
	}

	response.Created(c, gin.H{"list": rows})
}

// List GET /api/v1/audits
func (h *AuditHandler) List(c *gin.Context) {
	var req dto.AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.auditSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAuditError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Delete DELETE /api/v1/audits/:id
func (h *AuditHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	if err := h.auditSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleAuditError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListRules GET /api/v1/audits/rules
func (h *AuditHandler) ListRules(c *gin.Context) {
	rules, err := h.auditSvc.ListRules(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": rules})
}

// UpsertRule PUT /api/v1/audits/rules
func (h *AuditHandler) UpsertRule(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.UpsertPointRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	rule, err := h.auditSvc.UpsertRule(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAuditError(c, err)
		return
	}

	response.OK(c, rule)
}

// Summary per-employee points for a date range
// GET /api/v1/audits/summary?start=&end=
func (h *AuditHandler) Summary(c *gin.Context) {
	var req dto.AuditSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	summary, err := h.auditSvc.Summary(c.Request.Context(), &req)
	if err != nil {
		h.handleAuditError(c, err)
		return
	}

	response.OK(c, summary)
}

func (h *AuditHandler) handleAuditError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuditNotFound):
		response.NotFound(c, 17001, "audit not found")
	case errors.Is(err, service.ErrAuditLanidRequired):
		response.BadRequest(c, 17002, "lanid must not be blank")
	default:
		if !writeDateError(c, err) {
			response.InternalError(c)
		}
	}
}
