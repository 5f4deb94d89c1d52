package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shahadathhs/blogman/internal/auth"
	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/transport/http/middleware"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer([]byte(testKey), time.Hour)
}

// newEngine builds a minimal gin engine with the Auth middleware protecting
// GET /protected. The handler echoes userID and userRole from the context so
// tests can assert they were set.
func newEngine(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{middleware.Auth(testIssuer())}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.String(http.StatusOK, "%s:%s", c.GetString("userID"), c.GetString("userRole"))
	})
	r.GET("/protected", chain...)
	return r
}

func get(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	if w := get(newEngine(), ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	if w := get(newEngine(), "Basic dXNlcjpwYXNz"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken_Returns401(t *testing.T) {
	if w := get(newEngine(), "Bearer not.a.jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_WrongSigningKey_Returns401(t *testing.T) {
	other := auth.NewTokenIssuer([]byte("different-key-that-is-32-chars!!"), time.Hour)
	tok, err := other.SignSession("user-1", "test@example.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}

	if w := get(newEngine(), "Bearer "+tok); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	expired := auth.NewTokenIssuer([]byte(testKey), -time.Hour)
	tok, err := expired.SignSession("user-1", "test@example.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}

	if w := get(newEngine(), "Bearer "+tok); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_NonSessionPurpose_Returns401(t *testing.T) {
	tok, err := testIssuer().SignPasswordReset("user-1", "test@example.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("sign reset token: %v", err)
	}

	if w := get(newEngine(), "Bearer "+tok); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401: reset tokens must not open sessions", w.Code)
	}
}

func TestAuth_ValidToken_SetsUserIDAndRole(t *testing.T) {
	tok, err := testIssuer().SignSession("user-abc", "test@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}

	w := get(newEngine(), "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "user-abc:admin" {
		t.Errorf("body = %q, want %q", got, "user-abc:admin")
	}
}

func TestRequireRole_WrongRole_Returns403(t *testing.T) {
	tok, err := testIssuer().SignSession("user-1", "test@example.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}

	engine := newEngine(middleware.RequireRole(domain.RoleAdmin))
	if w := get(engine, "Bearer "+tok); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireRole_MatchingRole_Passes(t *testing.T) {
	tok, err := testIssuer().SignSession("admin-1", "admin@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}

	engine := newEngine(middleware.RequireRole(domain.RoleAdmin))
	if w := get(engine, "Bearer "+tok); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
