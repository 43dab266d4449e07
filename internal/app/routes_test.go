package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/cmsbase/internal/config"
	"github.com/simp-lee/cmsbase/internal/middleware"
	"github.com/simp-lee/cmsbase/internal/token"
)

// stubModule declares a single public route.
type stubModule struct{}

func (stubModule) Routes() []middleware.Route {
	return []middleware.Route{
		{Method: http.MethodGet, Path: "/ping", Public: true, Handler: func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"pong": true})
		}},
	}
}

func newTestDeps(t *testing.T) *RouteDeps {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	tokens, err := token.New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token.New: %v", err)
	}
	guard := middleware.NewGuard(tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return &RouteDeps{
		Modules: []Module{stubModule{}},
		Guard:   guard,
		DB:      db,
		Storage: config.StorageConfig{UploadDir: t.TempDir(), PublicBaseURL: "/uploads"},
	}
}

func newTestEngine(t *testing.T, deps *RouteDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if err := RegisterRoutes(r, deps); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return r
}

func TestRegisterRoutes_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	if err := RegisterRoutes(nil, newTestDeps(t)); err == nil {
		t.Error("expected error for nil router")
	}
	if err := RegisterRoutes(gin.New(), nil); err == nil {
		t.Error("expected error for nil deps")
	}

	deps := newTestDeps(t)
	deps.Guard = nil
	if err := RegisterRoutes(gin.New(), deps); err == nil {
		t.Error("expected error for missing guard")
	}

	deps = newTestDeps(t)
	deps.Modules = nil
	if err := RegisterRoutes(gin.New(), deps); err == nil {
		t.Error("expected error for empty module list")
	}

	deps = newTestDeps(t)
	deps.Modules = []Module{nil}
	if err := RegisterRoutes(gin.New(), deps); err == nil {
		t.Error("expected error for nil module")
	}
}

func TestHealth_OK(t *testing.T) {
	r := newTestEngine(t, newTestDeps(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d; want 200", w.Code)
	}
	var body struct {
		Status     string `json:"status"`
		Components struct {
			Database string `json:"database"`
		} `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Status != "ok" || body.Components.Database != "ok" {
		t.Errorf("body=%+v; want ok/ok", body)
	}
}

func TestHealth_DegradedWhenDBClosed(t *testing.T) {
	deps := newTestDeps(t)
	r := newTestEngine(t, deps)

	sqlDB, err := deps.DB.DB()
	if err != nil {
		t.Fatalf("DB(): %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status=%d; want 503", w.Code)
	}
}

func TestModuleRoutesAreMounted(t *testing.T) {
	r := newTestEngine(t, newTestDeps(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status=%d; want 200", w.Code)
	}
}

func TestNoRoute_JSON404(t *testing.T) {
	r := newTestEngine(t, newTestDeps(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d; want 404", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type=%q; want application/json", ct)
	}
}
