package server

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"beondiet/internal/handlers"
	applog "beondiet/internal/log"
	"beondiet/internal/services"
	"beondiet/internal/store"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr     string
	Database *gorm.DB
	// Decimals is the precision recipe macros are persisted with.
	Decimals int
}

// Server wraps an http.Server serving the ingredient and recipe API.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration. Without a
// database only the health endpoint is functional.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"database", cfg.Database != nil,
		"decimals", cfg.Decimals,
	)

	if cfg.Database != nil {
		svc := services.New(store.New(cfg.Database), services.Options{Decimals: cfg.Decimals})
		handlers.Configure(svc)
		applog.Debug(context.Background(), "handler dependencies configured")
	} else {
		handlers.Configure(nil)
		applog.Warn(context.Background(), "server started without database; api routes will be unavailable")
	}

	handler := withRequestID(newRouter())

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
