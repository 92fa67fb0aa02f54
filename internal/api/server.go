// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the composition root of the HTTP surface: it builds the chi
router, installs the middleware chain and mounts every domain handler.

Route map:

	GET  /health, /ready                  probes, no auth
	GET  {ImagePublicPath}/*              stored images (local driver only)
	/auth                                 login, logout, me
	/tags                                 tag registry
	/dishes                               dish catalog
	/dishes/{id}/comments                 comments of one dish
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/dishhub/internal/core/comment"
	"github.com/taibuivan/dishhub/internal/core/dish"
	"github.com/taibuivan/dishhub/internal/core/tag"
	"github.com/taibuivan/dishhub/internal/platform/config"
	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/middleware"
	"github.com/taibuivan/dishhub/internal/users/auth"
)

// Handlers is everything the router mounts. Images may be nil.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth    *auth.Handler
	Dish    *dish.Handler
	Comment *comment.Handler
	Tag     *tag.Handler

	// Images serves files from the local image store.
	Images http.Handler
}

// Server owns the router, the listening http.Server and the rate limiter
// whose sweep goroutine must be awaited on shutdown.
type Server struct {
	router  chi.Router
	http    *http.Server
	limiter *middleware.RateLimiter
	log     *slog.Logger
}

// NewServer assembles the router. The rate limiter's sweep stops when
// context is cancelled.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	server := &Server{
		router:  chi.NewRouter(),
		limiter: middleware.NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst),
		log:     log,
	}

	server.installMiddleware(cfg, verifier)
	server.mountRoutes(cfg.ImagePublicPath, h)

	server.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.router,
		ReadTimeout:       constants.DefaultReadTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}
	return server
}

// installMiddleware applies the chain outermost first. Authenticate only
// attaches a principal; the per-route gates decide what is required.
func (server *Server) installMiddleware(cfg *config.Config, verifier middleware.TokenVerifier) {
	server.router.Use(
		middleware.RequestID(),
		middleware.AccessLog(server.log),
		middleware.PanicRecovery(server.log),
		chimw.Timeout(constants.GlobalRequestTimeout),
		server.limiter.Handler,
		middleware.CORS(cfg, cfg.ExtraOrigins),
		chimw.CleanPath,
		middleware.Authenticate(verifier),
	)
}

func (server *Server) mountRoutes(imagePath string, h Handlers) {
	router := server.router

	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)

	if h.Images != nil {
		prefix := "/" + strings.Trim(imagePath, "/")
		router.Handle(prefix+"/*", http.StripPrefix(prefix+"/", h.Images))
	}

	router.Route("/auth", h.Auth.RegisterRoutes)
	router.Route("/tags", h.Tag.RegisterRoutes)
	router.Route("/dishes", func(dishes chi.Router) {
		h.Dish.RegisterRoutes(dishes)
		dishes.Route("/{id}/comments", h.Comment.RegisterRoutes)
	})
}

// Handler returns the router without the listener, for tests.
func (server *Server) Handler() http.Handler {
	return server.router
}

// ListenAndServe blocks until the listener fails or Shutdown is called, in
// which case it returns http.ErrServerClosed.
func (server *Server) ListenAndServe() error {
	server.log.Info("server_starting", slog.String("addr", server.http.Addr))
	return server.http.ListenAndServe()
}

// Shutdown drains in-flight requests, then waits for the rate limiter's
// sweep, both bounded by timeout.
func (server *Server) Shutdown(timeout time.Duration) error {
	deadline, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := server.http.Shutdown(deadline)
	select {
	case <-server.limiter.Done():
	case <-deadline.Done():
	}

	server.log.Info("server_stopped")
	return err
}
