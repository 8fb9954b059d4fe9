// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/azhdanov/zarnitsa/internal/auth"
	"github.com/azhdanov/zarnitsa/internal/bank"
	"github.com/azhdanov/zarnitsa/internal/book"
	"github.com/azhdanov/zarnitsa/internal/member"
	"github.com/azhdanov/zarnitsa/internal/platform/config"
	"github.com/azhdanov/zarnitsa/internal/platform/constants"
	"github.com/azhdanov/zarnitsa/internal/platform/middleware"
	"github.com/azhdanov/zarnitsa/internal/search"
	"github.com/azhdanov/zarnitsa/internal/song"
	"github.com/azhdanov/zarnitsa/internal/songevent"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler, answering 200 whenever the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, answering 200 when all dependencies are healthy.
	Readiness http.HandlerFunc

	// Auth handles staff authentication and account administration.
	Auth *auth.Handler

	// Song handles the campfire song catalog, categories, and songbooks.
	Song *song.Handler

	// Bank handles the content piggy-bank: games, legends, and KTDs.
	Bank *bank.Handler

	// SongEvent handles scheduled song events.
	SongEvent *songevent.Handler

	// Book handles the methodical book chapter tree.
	Book *book.Handler

	// Member handles Telegram community members and their reviews.
	Member *member.Handler

	// Search handles cross-catalog fuzzy search.
	Search *search.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/songs", h.Song.Routes())
		api.Mount("/bank", h.Bank.Routes())
		api.Mount("/events", h.SongEvent.Routes())
		api.Mount("/book", h.Book.Routes())
		api.Mount("/members", h.Member.Routes())
		api.Mount("/search", h.Search.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
