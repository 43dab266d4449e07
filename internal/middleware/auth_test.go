package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/token"
)

func newTestGuard(t *testing.T) (*Guard, *token.Service) {
	t.Helper()
	tokens, err := token.New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token.New: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGuard(tokens, logger), tokens
}

func issueToken(t *testing.T, tokens *token.Service, role domain.Role) string {
	t.Helper()
	user := &domain.User{Email: "test@example.com", Role: role}
	user.ID = 42
	raw, _, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return raw
}

// newGuardedRouter registers a route table covering the three access tiers.
func newGuardedRouter(t *testing.T, guard *Guard) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	whoami := func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	}

	err := guard.Apply(r.Group("/"), []Route{
		{Method: http.MethodGet, Path: "/public", Public: true, Handler: whoami},
		{Method: http.MethodGet, Path: "/authed", Handler: ok},
		{Method: http.MethodGet, Path: "/admin", Roles: []domain.Role{domain.RoleAdmin}, Handler: ok},
		{Method: http.MethodGet, Path: "/editorial", Roles: []domain.Role{domain.RoleAdmin, domain.RoleEditor}, Handler: ok},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return r
}

func doRequest(r *gin.Engine, bearer string) func(path string) *httptest.ResponseRecorder {
	return func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
}

func TestGuard_PublicRouteAllowsAnonymous(t *testing.T) {
	guard, _ := newTestGuard(t)
	r := newGuardedRouter(t, guard)

	w := doRequest(r, "")("/public")
	if w.Code != http.StatusOK {
		t.Errorf("status=%d; want 200", w.Code)
	}
}

func TestGuard_MissingToken(t *testing.T) {
	guard, _ := newTestGuard(t)
	r := newGuardedRouter(t, guard)

	w := doRequest(r, "")("/authed")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status=%d; want 401", w.Code)
	}
}

func TestGuard_MalformedAuthorizationHeader(t *testing.T) {
	guard, _ := newTestGuard(t)
	r := newGuardedRouter(t, guard)

	req := httptest.NewRequest(http.MethodGet, "/authed", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status=%d; want 401", w.Code)
	}
}

func TestGuard_InvalidToken(t *testing.T) {
	guard, _ := newTestGuard(t)
	r := newGuardedRouter(t, guard)

	w := doRequest(r, "not-a-token")("/authed")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status=%d; want 401", w.Code)
	}
}

func TestGuard_ExpiredToken(t *testing.T) {
	guard, _ := newTestGuard(t)
	r := newGuardedRouter(t, guard)

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	w := doRequest(r, raw)("/authed")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status=%d; want 401", w.Code)
	}
}

func TestGuard_AuthenticatedWithoutRoleRequirement(t *testing.T) {
	guard, tokens := newTestGuard(t)
	r := newGuardedRouter(t, guard)

	raw := issueToken(t, tokens, domain.RoleViewer)
	w := doRequest(r, raw)("/authed")
	if w.Code != http.StatusOK {
		t.Errorf("status=%d; want 200", w.Code)
	}
}

func TestGuard_RoleEnforcement(t *testing.T) {
	guard, tokens := newTestGuard(t)
	r := newGuardedRouter(t, guard)

	tests := []struct {
		name string
		role domain.Role
		path string
		want int
	}{
		{"admin on admin route", domain.RoleAdmin, "/admin", http.StatusOK},
		{"editor on admin route", domain.RoleEditor, "/admin", http.StatusForbidden},
		{"viewer on admin route", domain.RoleViewer, "/admin", http.StatusForbidden},
		{"admin on editorial route", domain.RoleAdmin, "/editorial", http.StatusOK},
		{"editor on editorial route", domain.RoleEditor, "/editorial", http.StatusOK},
		{"viewer on editorial route", domain.RoleViewer, "/editorial", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := issueToken(t, tokens, tt.role)
			w := doRequest(r, raw)(tt.path)
			if w.Code != tt.want {
				t.Errorf("status=%d; want %d", w.Code, tt.want)
			}
		})
	}
}

func TestGuard_PublicRouteIgnoresToken(t *testing.T) {
	guard, tokens := newTestGuard(t)
	r := newGuardedRouter(t, guard)

	// A token on a public route is not verified; the request stays anonymous.
	w := doRequest(r, issueToken(t, tokens, domain.RoleAdmin))("/public")
	if w.Code != http.StatusOK {
		t.Errorf("status=%d; want 200", w.Code)
	}
}

func TestGuard_Apply_RejectsBadDeclarations(t *testing.T) {
	guard, _ := newTestGuard(t)
	gin.SetMode(gin.TestMode)
	ok := func(c *gin.Context) {}

	tests := []struct {
		name  string
		route Route
	}{
		{"missing method", Route{Path: "/x", Handler: ok}},
		{"missing path", Route{Method: http.MethodGet, Handler: ok}},
		{"nil handler", Route{Method: http.MethodGet, Path: "/x"}},
		{"public with roles", Route{Method: http.MethodGet, Path: "/x", Public: true, Roles: []domain.Role{domain.RoleAdmin}, Handler: ok}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			if err := guard.Apply(r.Group("/"), []Route{tt.route}); err == nil {
				t.Error("expected registration error")
			}
		})
	}
}

func TestClaimsFromContext_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if claims := ClaimsFromContext(req.Context()); claims != nil {
		t.Errorf("expected nil claims, got %+v", claims)
	}
}
