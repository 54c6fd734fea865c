package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/config"
	"github.com/sammyTGR/tgr-sub005/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTokens struct {
	revoked map[string]bool
	err     error
}

func (f *fakeTokens) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

type fakeRate struct {
	allow bool
	err   error
	calls int
}

func (f *fakeRate) CheckRateLimit(_ context.Context, _ string, _ int, _ time.Duration) (bool, int64, error) {
	f.calls++
	return f.allow, 1, f.err
}

func newTestManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:              "middleware-test-secret-0123456789",
		AccessTokenTTL:         time.Minute,
		RefreshTokenTTLDefault: time.Hour,
	})
}

func protectedEngine(mgr *jwt.Manager, tokens TokenChecker, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(mgr, tokens, zap.NewNop())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"employee_id": c.GetInt("employee_id"), "role": c.GetString("role")})
	})
	r.GET("/p", handlers...)
	return r
}

func doGet(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/p", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	mgr := newTestManager()
	access, err := mgr.GenerateAccessToken(7, "employee", "Sales")
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}
	refresh, _ := mgr.GenerateRefreshToken(7, "employee", "Sales", false)

	r := protectedEngine(mgr, nil)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"ok", "Bearer " + access, http.StatusOK},
		{"lowercase scheme", "bearer " + access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, tt.header)
			if w.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, w.Code)
			}
		})
	}

	w := doGet(r, "Bearer "+access)
	if !strings.Contains(w.Body.String(), `"employee_id":7`) {
		t.Errorf("expected employee id in context, got %s", w.Body.String())
	}
}

func TestJWTAuth_Blacklist(t *testing.T) {
	mgr := newTestManager()
	access, _ := mgr.GenerateAccessToken(7, "employee", "Sales")
	claims, err := mgr.ParseToken(access)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	revoked := protectedEngine(mgr, &fakeTokens{revoked: map[string]bool{claims.ID: true}})
	if w := doGet(revoked, "Bearer "+access); w.Code != http.StatusUnauthorized {
		t.Errorf("revoked token: expected 401, got %d", w.Code)
	}

	failing := protectedEngine(mgr, &fakeTokens{err: errors.New("redis down")})
	if w := doGet(failing, "Bearer "+access); w.Code != http.StatusOK {
		t.Errorf("blacklist outage should not block: got %d", w.Code)
	}
}

func TestRoleAuth(t *testing.T) {
	mgr := newTestManager()
	admin, _ := mgr.GenerateAccessToken(1, "admin", "Management")
	employee, _ := mgr.GenerateAccessToken(7, "employee", "Sales")

	r := protectedEngine(mgr, nil, RoleAuth("admin", "super_admin"))

	if w := doGet(r, "Bearer "+admin); w.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", w.Code)
	}
	if w := doGet(r, "Bearer "+employee); w.Code != http.StatusForbidden {
		t.Errorf("employee: expected 403, got %d", w.Code)
	}
}

func rateEngine(rdb RateChecker, limit int) *gin.Engine {
	r := gin.New()
	r.GET("/login", RateLimit(rdb, limit, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/login", nil))
	return w.Code
}

func TestRateLimit_LocalFallback(t *testing.T) {
	r := rateEngine(nil, 3)
	for i := 0; i < 3; i++ {
		if code := hit(r); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := hit(r); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after the burst, got %d", code)
	}
}

func TestRateLimit_Redis(t *testing.T) {
	denied := &fakeRate{allow: false}
	if code := hit(rateEngine(denied, 3)); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 when redis denies, got %d", code)
	}
	if denied.calls != 1 {
		t.Errorf("expected one redis call, got %d", denied.calls)
	}

	failing := &fakeRate{err: errors.New("redis down")}
	if code := hit(rateEngine(failing, 3)); code != http.StatusOK {
		t.Errorf("expected local fallback to allow, got %d", code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	r := rateEngine(nil, 0)
	for i := 0; i < 10; i++ {
		if code := hit(r); code != http.StatusOK {
			t.Fatalf("expected 200 with limiting disabled, got %d", code)
		}
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/b", BodyLimit(8), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/b", strings.NewReader("0123456789")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/b", strings.NewReader("0123")))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/r", RequestID(), func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/r", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("expected incoming id to be reused, got %q", w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/r", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", requestIDMaxLen+1))
	r.ServeHTTP(w, req)
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("expected a generated UUID, got %q", w.Header().Get("X-Request-ID"))
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://ops.example.com/"}))
	r.GET("/c", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/c", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight: expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://ops.example.com" {
		t.Errorf("expected origin echoed, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/c", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be allowed")
	}
}
