package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marvel202/banana-compose/internal/composer"
	"github.com/marvel202/banana-compose/internal/http/handlers"
	"github.com/marvel202/banana-compose/internal/infra"
	"github.com/marvel202/banana-compose/internal/storage"
)

func newTestRouter(t *testing.T, cfg *infra.Config) http.Handler {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	logger := infra.Logger(zerolog.New(io.Discard))
	service := composer.NewService(nil, store, cfg.OutputKey)
	app := handlers.NewApp(cfg, logger, service, store)
	return NewRouter(app, cfg, logger)
}

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t, &infra.Config{OutputKey: "generated_composite.png"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("body = %s", rec.Body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("response is missing X-Request-ID")
	}
}

func TestRouterServesUI(t *testing.T) {
	router := newTestRouter(t, &infra.Config{OutputKey: "generated_composite.png"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<canvas") {
		t.Fatal("UI page is missing the drawing canvas")
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t, &infra.Config{OutputKey: "generated_composite.png"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRouterRateLimit(t *testing.T) {
	cfg := &infra.Config{OutputKey: "generated_composite.png", RateLimitPerMin: 2}
	router := newTestRouter(t, cfg)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		router.ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last.Code)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Fatal("rate limited response is missing Retry-After")
	}
}
