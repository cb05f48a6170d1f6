package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ignite/rentops/internal/config"
	"github.com/ignite/rentops/internal/pkg/logger"
)

// Server represents the API server
type Server struct {
	config config.ServerConfig
	server *http.Server
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, h *Handlers) *Server {
	router := SetupRoutes(h)
	return &Server{
		config: cfg,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.GetHost(), cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins serving requests. Blocks until the listener closes.
func (s *Server) Start() error {
	logger.Info("api server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("api server shutting down")
	return s.server.Shutdown(ctx)
}
