package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/pkg/jwt"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// RealtimeHandler websocket endpoint for change events
type RealtimeHandler struct {
	hub      *realtime.Hub
	jwtMgr   *jwt.Manager
	upgrader websocket.Upgrader
}

// NewRealtimeHandler creates a RealtimeHandler.
func NewRealtimeHandler(hub *realtime.Hub, jwtMgr *jwt.Manager, allowOrigins []string) *RealtimeHandler {
	return &RealtimeHandler{
		hub:      hub,
		jwtMgr:   jwtMgr,
		upgrader: realtime.Upgrader(allowOrigins),
	}
}

// Connect upgrades to a websocket. Browsers cannot set headers on the
// handshake, so the access token travels in the query string.
// GET /realtime?token=<access token>
func (h *RealtimeHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c, 10002, "missing access token")
		return
	}

	claims, err := h.jwtMgr.ParseToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		response.Unauthorized(c, 10002, "invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		return
	}

	h.hub.Serve(conn, claims.EmployeeID, IsPrivileged(claims.Role))
}
