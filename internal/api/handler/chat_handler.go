package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// ChatHandler direct and group messaging
type ChatHandler struct {
	chatSvc service.ChatService
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// Send POST /api/v1/chat/messages
func (h *ChatHandler) Send(c *gin.Context) {
	me, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	msg, err := h.chatSvc.Send(c.Request.Context(), me, &req)
	if err != nil {
		h.handleChatError(c, err)
		return
	}

	response.Created(c, msg)
}

// Conversation GET /api/v1/chat/direct/:id
func (h *ChatHandler) Conversation(c *gin.Context) {
	me, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}
	other, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req dto.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, err := h.chatSvc.Conversation(c.Request.Context(), me, other, &req)
	if err != nil {
		h.handleChatError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GroupHistory GET /api/v1/chat/groups/:id/messages
func (h *ChatHandler) GroupHistory(c *gin.Context) {
	me, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, err := h.chatSvc.GroupHistory(c.Request.Context(), me, c.Param("id"), &req)
	if err != nil {
		h.handleChatError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// MarkRead POST /api/v1/chat/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	me, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	n, err := h.chatSvc.MarkRead(c.Request.Context(), me, &req)
	if err != nil {
		h.handleChatError(c, err)
		return
	}

	response.OK(c, gin.H{"updated": n})
}

// UnreadCounts GET /api/v1/chat/unread
func (h *ChatHandler) UnreadCounts(c *gin.Context) {
	me, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	list, err := h.chatSvc.UnreadCounts(c.Request.Context(), me)
	if err != nil {
		h.handleChatError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateGroup POST /api/v1/chat/groups
func (h *ChatHandler) CreateGroup(c *gin.Context) {
	me, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateChatGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	group, err := h.chatSvc.CreateGroup(c.Request.Context(), me, &req)
	if err != nil {
		h.handleChatError(c, err)
		return
	}

	response.Created(c, group)
}

// ListGroups GET /api/v1/chat/groups
func (h *ChatHandler) ListGroups(c *gin.Context) {
	me, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	list, err := h.chatSvc.ListGroups(c.Request.Context(), me)
	if err != nil {
		h.handleChatError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

func (h *ChatHandler) handleChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMessageTarget):
		response.BadRequest(c, 20001, "exactly one of receiver_id or group_id is required")
	case errors.Is(err, service.ErrMessageEmpty):
		response.BadRequest(c, 20002, "message body must not be empty")
	case errors.Is(err, service.ErrChatGroupNotFound):
		response.NotFound(c, 20003, "chat group not found")
	case errors.Is(err, service.ErrNotChatGroupMember):
		response.Forbidden(c, 20004, "not a member of this chat group")
	case errors.Is(err, service.ErrChatMemberNotFound):
		response.NotFound(c, 20005, "chat member not found")
	case errors.Is(err, service.ErrInvalidHistoryQuery):
		response.BadRequest(c, 20006, "before must be an RFC3339 timestamp")
	default:
		response.InternalError(c)
	}
}
