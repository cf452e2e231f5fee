package server

import (
	"context"
	"net/http"
	"time"

	"github.com/dvegac/tasks-be/internal/auth"
	"github.com/dvegac/tasks-be/internal/config"
	"github.com/dvegac/tasks-be/internal/http/handlers"
	"github.com/dvegac/tasks-be/internal/logging"
	"github.com/dvegac/tasks-be/internal/middleware"
	"github.com/dvegac/tasks-be/internal/models"
	"github.com/dvegac/tasks-be/internal/storage"
	"github.com/dvegac/tasks-be/internal/tasks"
	"github.com/dvegac/tasks-be/internal/users"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires services, guards, routes, and middleware into a ready server.
func New(cfg config.Config, log logging.Logger, store storage.Store) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	authSvc := auth.NewService(store, tokens)
	taskSvc := tasks.NewService(store)
	userSvc := users.NewService(store)

	// Per-operation guards: authn on every protected route, the admin role
	// only on user management.
	authn := middleware.Authenticate(tokens, log)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(store, time.Now()).Register(mux)
	handlers.NewAuthHandler(authSvc, log).Register(mux, authn)
	handlers.NewTaskHandler(taskSvc, log).Register(mux, authn)
	handlers.NewUserHandler(userSvc, log).Register(mux, authn, adminOnly)

	var handler http.Handler = mux
	handler = middleware.Recover(log, cfg.Production(), handler)
	handler = middleware.Logging(log, handler)
	handler = middleware.CORS(cfg.CORSOrigins)(handler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler exposes the fully wired handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
