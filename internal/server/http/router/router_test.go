package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ajdiallo/chopnow/internal/server/http/handlers"
	testhelpers "github.com/ajdiallo/chopnow/internal/test"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return Setup(&testhelpers.OrderingFacadeStub{}, logger)
}

func TestSetupPublicRoutes(t *testing.T) {
	engine := newTestRouter()

	body := strings.NewReader(`{"email":"ada@example.com","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("register returned %d", rec.Code)
	}
	if rec.Header().Get("Authorization") == "" {
		t.Fatal("expected auth token in response headers")
	}
}

func TestSetupWebhookRoute(t *testing.T) {
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/paystack", strings.NewReader(`{}`))
	req.Header.Set("X-Paystack-Signature", "sig")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("webhook returned %d", rec.Code)
	}
}

func TestSetupAuthedRoutes(t *testing.T) {
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("authed request returned %d", rec.Code)
	}
}

func TestSetupRejectsAnonymous(t *testing.T) {
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

var _ handlers.OrderingFacade = (*testhelpers.OrderingFacadeStub)(nil)
