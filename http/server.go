// Package http serves the symptom form, the result pages and the JSON prediction API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Garima-149/disease-prediction2/ml"
)

// Server HTTP server
type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

// ServerConfig server settings
type ServerConfig struct {
	Port           int
	Timeout        time.Duration
	AllowedOrigins []string
	MaxBodyBytes   int64
	StaticDir      string
	StrictForm     bool
}

// Dependencies are built once at startup and shared read-only by every handler.
type Dependencies struct {
	Predictor *ml.Predictor
	Renderer  *Renderer
	Logger    *zap.Logger
	ModelType string
}

// DefaultServerConfig default server settings
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           5000,
		Timeout:        30 * time.Second,
		AllowedOrigins: []string{"*"},
		MaxBodyBytes:   1 << 20,
	}
}

// NewServer wires routes and middleware
func NewServer(config ServerConfig, deps Dependencies) (*Server, error) {
	if deps.Predictor == nil {
		return nil, ml.ErrModelNotLoaded
	}
	if deps.Renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	handler, err := NewHandler(config, deps)
	if err != nil {
		return nil, err
	}

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      handler,
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
		logger: deps.Logger,
	}, nil
}

// NewHandler builds the routed, middleware-wrapped handler without a listener.
func NewHandler(config ServerConfig, deps Dependencies) (http.Handler, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	pages := &pageHandlers{deps: deps, strict: config.StrictForm}
	pages.register(mux)

	api := &apiHandlers{deps: deps, strict: config.StrictForm}
	api.register(mux)

	static, err := staticHandler(config.StaticDir)
	if err != nil {
		return nil, err
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", static))

	middlewares := []Middleware{
		LoggerMiddleware(deps.Logger),
		RecoveryMiddleware(deps.Logger),
		SecurityHeadersMiddleware,
		CORSMiddleware(config.AllowedOrigins),
	}
	if config.MaxBodyBytes > 0 {
		middlewares = append(middlewares, RequestSizeMiddleware(config.MaxBodyBytes))
	}
	return Chain(middlewares...)(mux), nil
}

// Start blocks serving requests until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop shuts the server down, waiting up to five seconds for in-flight requests.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}
