package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/config"
	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/v1/auth"
)

// AuthHandler login and token endpoints
type AuthHandler struct {
	authSvc service.AuthService
	auth    *config.AuthConfig
}

// NewAuthHandler creates an AuthHandler. auth may be nil (default cookie settings).
func NewAuthHandler(authSvc service.AuthService, auth *config.AuthConfig) *AuthHandler {
	if auth == nil {
		auth = &config.AuthConfig{}
	}
	return &AuthHandler{authSvc: authSvc, auth: auth}
}

// Login email and password login; the refresh token is also set as an HttpOnly cookie
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setRefreshCookie(c, result)
	response.OK(c, result)
}

// RefreshToken issues a new token pair from the body or cookie refresh token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	// body is optional
	_ = c.ShouldBindJSON(&req)

	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(refreshCookieName)
	}
	if token == "" {
		response.Unauthorized(c, 11003, "refresh token missing")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), token)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setRefreshCookie(c, result)
	response.OK(c, result)
}

// Logout revokes the access token and clears the cookie
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}

	h.clearRefreshCookie(c)
	response.OK(c, nil)
}

// Me current employee
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	emp, err := h.authSvc.Me(c.Request.Context(), id)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, emp)
}

// ChangePassword self-service password change
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	id, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), id, &req); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "invalid email or password")
	case errors.Is(err, service.ErrEmployeeInactive):
		response.Forbidden(c, 11002, "employee is inactive")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		h.clearRefreshCookie(c)
		response.Unauthorized(c, 11003, "invalid refresh token")
	case errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, 11004, "current password is incorrect")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12001, "employee not found")
	default:
		response.InternalError(c)
	}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, tok *dto.TokenResponse) {
	if tok == nil || tok.RefreshToken == "" {
		return
	}
	maxAge := int(h.auth.RefreshTokenTTLDefault.Seconds())
	if tok.RememberMe {
		maxAge = int(h.auth.RefreshTokenTTLRemember.Seconds())
	}
	c.SetSameSite(sameSite(h.auth.Cookie.SameSite))
	c.SetCookie(refreshCookieName, tok.RefreshToken, maxAge, refreshCookiePath, h.auth.Cookie.Domain, h.auth.Cookie.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(sameSite(h.auth.Cookie.SameSite))
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, h.auth.Cookie.Domain, h.auth.Cookie.Secure, true)
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
