package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/pkg/jwt"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// Context keys set by middleware.JWTAuth.
const (
	CtxEmployeeID = "employee_id"
	CtxRole       = "role"
	CtxDepartment = "department"
	CtxClaims     = "claims"
)

// MustGetEmployeeID reads the caller's employee id injected by JWTAuth.
// On failure it writes a 401 and returns false; callers should return.
func MustGetEmployeeID(c *gin.Context) (int, bool) {
	v, exists := c.Get(CtxEmployeeID)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return 0, false
	}
	id, ok := v.(int)
	if !ok || id <= 0 {
		response.Unauthorized(c, 10002, "not authenticated")
		return 0, false
	}
	return id, true
}

// MustGetRole reads the caller's role.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxRole)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetClaims reads the parsed access token.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(CtxClaims)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	return claims, true
}

// IsPrivileged admins and super admins
func IsPrivileged(role string) bool {
	return role == model.RoleAdmin || role == model.RoleSuperAdmin
}

// paramInt parses an integer path parameter; writes a 400 on failure.
func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		response.BadRequest(c, 10001, "invalid "+name)
		return 0, false
	}
	return v, true
}
