package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/marvel202/banana-compose/internal/http/handlers"
	"github.com/marvel202/banana-compose/internal/infra"
	"github.com/marvel202/banana-compose/internal/middleware"
)

// NewRouter assembles the HTTP surface: the embedded UI at the root and the
// compose/result API under /v1.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
	)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
	}
	if cfg.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
	}

	r.Get("/", app.Home)
	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/compose", app.Compose)
	r.Get("/v1/result", app.Result)
	r.Get("/v1/result/download", app.ResultDownload)
	r.Get("/v1/result/archive", app.ResultArchive)

	return r
}
