package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/isekco/vestia/internal/adapter/http/handler"
	"github.com/isekco/vestia/internal/adapter/http/middleware"
	"github.com/isekco/vestia/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PositionHandler *handler.PositionHandler
	LedgerHandler   *handler.LedgerHandler
	HealthHandler   *handler.HealthHandler
	Logger          zerolog.Logger
	Metrics         *metrics.Metrics

	RateLimitPerSecond float64
	RateLimitBurst     int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	r.Use(middleware.Recovery)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitPerSecond > 0 {
			r.Use(middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst).Limit)
		}

		r.Get("/positions", cfg.PositionHandler.List)
		r.Get("/transactions", cfg.LedgerHandler.ListTransactions)

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/", cfg.LedgerHandler.Summary)
			r.Put("/", cfg.LedgerHandler.Store)
			r.Post("/refresh", cfg.LedgerHandler.Refresh)
		})
	})

	return r
}
