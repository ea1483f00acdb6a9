package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Portfolio/internal/config"
	"github.com/MikeSquared-Agency/Portfolio/internal/portfolio"
)

func NewRouter(svc *portfolio.Service, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute))

	info := NewInfoHandler(svc)
	optimize := NewOptimizeHandler(svc)

	r.Get("/", info.Root)
	r.Get("/health", info.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/optimize", optimize.Optimize)
		r.Post("/optimize/example", optimize.Example)
		r.Post("/statistics", optimize.Statistics)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/stats", info.Stats)
		})
	})

	return r
}

func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
