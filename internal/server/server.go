package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// WelcomeMessage is returned by the root endpoint
const WelcomeMessage = "Welcome to Python CI/CD Demo"

// APIVersion is the version reported by the root endpoint
var APIVersion = semver.MustParse("1.0.0")

// Config holds the server configuration
type Config struct {
	Host            string
	Port            int
	Debug           bool
	EnableMetrics   bool
	EnableCORS      bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            5000,
		EnableMetrics:   true,
		EnableCORS:      true,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Server represents the calcd HTTP server
type Server struct {
	config   *Config
	metrics  *Metrics
	gatherer prometheus.Gatherer
	router   *mux.Router
	handler  http.Handler
	server   *http.Server
	listener net.Listener
	mu       sync.RWMutex
}

// New creates a new server that registers its metrics with the default registry
func New(config *Config) (*Server, error) {
	return NewWithRegistry(config, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry creates a new server with a custom metrics registry. A nil
// registerer leaves the collectors unregistered.
func NewWithRegistry(config *Config, registerer prometheus.Registerer, gatherer prometheus.Gatherer) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}

	metrics, err := NewMetrics(registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	s := &Server{
		config:   config,
		metrics:  metrics,
		gatherer: gatherer,
	}
	s.router = s.routes()
	s.handler = s.middleware(s.router)

	return s, nil
}

// routes builds the router with all endpoints
func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(s.notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowed)

	router.HandleFunc("/", s.home).Methods("GET")
	router.HandleFunc("/health", s.healthCheck).Methods("GET")
	router.HandleFunc("/calculate", s.calculate).Methods("POST")

	if s.config.EnableMetrics && s.gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	return router
}

// middleware wraps the whole router, so 404 and 405 responses are logged,
// counted and carry CORS headers as well. CORS answers preflight requests
// itself. Recovery sits innermost so a panic is still logged and counted.
func (s *Server) middleware(next http.Handler) http.Handler {
	handler := s.recoveryMiddleware(next)
	if s.config.EnableCORS {
		handler = s.corsMiddleware(handler)
	}
	handler = s.metricsMiddleware(handler)
	return s.loggingMiddleware(handler)
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpServer := &http.Server{
		Addr:         listener.Addr().String(),
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	s.mu.Lock()
	s.listener = listener
	s.server = httpServer
	s.mu.Unlock()

	log.Info().
		Str("addr", httpServer.Addr).
		Bool("debug", s.config.Debug).
		Bool("metrics", s.config.EnableMetrics).
		Bool("cors", s.config.EnableCORS).
		Msg("Starting calcd server")

	go func() {
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Server stopped unexpectedly")
		}
	}()

	return nil
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	s.mu.RLock()
	httpServer := s.server
	s.mu.RUnlock()

	if httpServer == nil {
		return nil
	}

	log.Info().Msg("Shutting down server...")
	return httpServer.Shutdown(ctx)
}

// StartWithGracefulShutdown starts the server and blocks until SIGINT or
// SIGTERM is received or ctx is cancelled
func (s *Server) StartWithGracefulShutdown(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
		return err
	}

	log.Info().Msg("Server shutdown complete")
	return nil
}

// GetAddr returns the server address, resolving port 0 once listening
func (s *Server) GetAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
}
