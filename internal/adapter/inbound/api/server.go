package api

import (
	"context"
	"net"
	"net/http"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/common/slogger"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
)

// Server wraps the HTTP server with lifecycle management.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a Server from the API configuration and a router.
func NewServer(cfg config.APIConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	slogger.Info(ctx, "API server listening", slogger.Field("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests before closing.
func (s *Server) Shutdown(ctx context.Context) error {
	slogger.Info(ctx, "API server shutting down", nil)
	return s.httpServer.Shutdown(ctx)
}
