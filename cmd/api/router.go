package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/refinly/loan-referral/internal/entity"
	"github.com/refinly/loan-referral/internal/infra/http/handlers"
	"github.com/refinly/loan-referral/internal/infra/http/middleware"
)

type routerDeps struct {
	Logger       *zap.Logger
	Tokens       middleware.TokenParser
	Webhook      *handlers.WebhookHandler
	Leads        *handlers.LeadHandler
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	LoginLimiter *handlers.RateLimiter
	CORSOrigins  []string
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Recoverer(d.Logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// set before any Route/Mount so subrouters inherit them
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", d.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	chatbot := func(r chi.Router) {
		r.Get("/webhook", d.Webhook.Verify)
		r.Post("/webhook", d.Webhook.Receive)
		r.With(
			middleware.JWTAuth(d.Tokens),
			middleware.RequireRole(entity.RoleUser, entity.RoleReferrer, entity.RoleAdmin),
		).Post("/submit-lead", d.Leads.Submit)
	}
	r.Group(chatbot)
	r.Route("/api/chatbot", chatbot)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.LoginLimiter.Limit(d.Auth.Login))
	})

	return r
}
