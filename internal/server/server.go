package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Pravin-Jalodiya/codesage-web/internal/backend"
	"github.com/Pravin-Jalodiya/codesage-web/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend *backend.Client
	router  http.Handler
}

// New creates a Server with its backend client wired up.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		backend: backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger),
	}, nil
}

// HTTPServer creates and configures the HTTP server.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler.
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Backend returns the backend REST client.
func (s *Server) Backend() *backend.Client {
	return s.backend
}

// GetConfig returns the configuration.
func (s *Server) GetConfig() *config.Config {
	return s.cfg
}
