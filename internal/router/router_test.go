package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/db"
	"github.com/greencart/internal/handler"
	"github.com/greencart/internal/metrics"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:router-test?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	m, err := metrics.New()
	if err != nil {
		t.Fatalf("metrics.New returned error: %v", err)
	}

	api := handler.NewAPI(gdb, handler.Options{Metrics: m})
	return SetupRouter(api, Options{SessionSecret: "test-secret", Metrics: m}), m
}

func TestPingAndMetrics(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "pong") {
		t.Fatalf("unexpected ping response: %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected metrics endpoint, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `http_requests_total{method="GET",path="/ping",status_code="200"} 1`) {
		t.Fatalf("expected ping to be counted, body:\n%s", rr.Body.String())
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r, _ := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/cart"},
		{http.MethodPost, "/api/checkout"},
		{http.MethodGet, "/api/diary"},
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/payment-methods"},
		{http.MethodPost, "/api/favorites/1/toggle"},
	}
	for _, p := range paths {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(p.method, p.path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", p.method, p.path, rr.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body["error"] == "" {
			t.Fatalf("%s %s: expected json error body, got %s", p.method, p.path, rr.Body.String())
		}
	}
}

func TestUnauthorizedMessageIsLocalized(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Accept-Language", "th-TH,th;q=0.9")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "กรุณาเข้าสู่ระบบก่อน") {
		t.Fatalf("expected thai message, got %s", rr.Body.String())
	}
	if got := rr.Header().Get("Content-Language"); got != "th-TH" {
		t.Fatalf("expected Content-Language th-TH, got %q", got)
	}
}

func TestExcludedThaiFallsBackToEnglish(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Accept-Language", "th-TH;q=0,en;q=0.2")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if !strings.Contains(rr.Body.String(), "Please sign in first") {
		t.Fatalf("expected english message, got %s", rr.Body.String())
	}
	if got := rr.Header().Get("Content-Language"); got != "en-US" {
		t.Fatalf("expected Content-Language en-US, got %q", got)
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/strains", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected catalog to be public, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/strains/abc", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
