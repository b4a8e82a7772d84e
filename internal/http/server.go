// Package http exposes the transaction store as a JSON API. All routes under
// /api/v1 require an active session; the store itself enforces the same rule,
// so the middleware is a fast path, not the only guard.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sumstra/internal/log"
	"sumstra/internal/session"
	"sumstra/internal/store"
)

// NewRouter wires the API routes over the store and session gate.
func NewRouter(st *store.Store, gate *session.Gate, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	h := &handler{
		store:  st,
		logger: logger.WithComponent(log.ComponentHTTP),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(newRateLimiter(120, time.Minute).middleware)
	r.Use(requestLogging(h.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requireSession(gate))

		r.Get("/transactions", h.listTransactions)
		r.Post("/transactions", h.createTransaction)
		r.Patch("/transactions/{id}", h.updateTransaction)
		r.Delete("/transactions/{id}", h.deleteTransaction)
		r.Get("/summary", h.summary)
	})

	return r
}

// NewServer builds the HTTP server around the API router.
func NewServer(addr string, st *store.Store, gate *session.Gate, logger *log.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(st, gate, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
