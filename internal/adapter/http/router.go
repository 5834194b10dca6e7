package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/divyde/divyde/internal/adapter/http/handler"
	"github.com/divyde/divyde/internal/adapter/http/middleware"
	"github.com/divyde/divyde/internal/infrastructure/auth"
	"github.com/divyde/divyde/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	FriendHandler    *handler.FriendHandler
	DebtHandler      *handler.DebtHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(log.Logger).Wrap)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		// Everything below is scoped to the authenticated user
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Route("/friends", func(r chi.Router) {
				r.Post("/", cfg.FriendHandler.Create)
				r.Get("/", cfg.FriendHandler.List)
				r.Get("/{id}", cfg.FriendHandler.Get)
				r.Delete("/{id}", cfg.FriendHandler.Delete)
			})

			r.Route("/debts", func(r chi.Router) {
				r.Get("/", cfg.DebtHandler.List)
				r.Post("/", cfg.DebtHandler.Create)
				r.Patch("/{id}", cfg.DebtHandler.Update)
				r.Delete("/{id}", cfg.DebtHandler.Delete)
			})
		})
	})

	return r
}
