// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-classical.
//
// go-classical is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jeremyhahn/go-classical/internal/config"
	"github.com/jeremyhahn/go-classical/pkg/health"
	"github.com/jeremyhahn/go-classical/pkg/logging"
	"github.com/jeremyhahn/go-classical/pkg/metrics"
	"github.com/jeremyhahn/go-classical/pkg/pipeline"
)

// Server represents the REST API server.
type Server struct {
	server   *http.Server
	handlers *HandlerContext
	logger   *logging.Logger
	config   *Config
}

// Config holds the REST server configuration.
type Config struct {
	// Service runs the ciphers. Required.
	Service *pipeline.Service

	// Logger defaults to logging.DefaultLogger.
	Logger *logging.Logger

	// Host and Port form the listen address (default port: 8080)
	Host string
	Port int

	// Version is reported by /health
	Version string

	// MetricsEnabled mounts the Prometheus handler at MetricsPath
	MetricsEnabled bool
	MetricsPath    string

	// MaxBodyBytes bounds request bodies (default: 2 MiB)
	MaxBodyBytes int64

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewConfig maps the server and metrics sections of settings onto a
// server configuration.
func NewConfig(settings *config.Config, svc *pipeline.Service, logger *logging.Logger, version string) *Config {
	return &Config{
		Service:        svc,
		Logger:         logger,
		Host:           settings.Server.Host,
		Port:           settings.Server.Port,
		Version:        version,
		MetricsEnabled: settings.Metrics.Enabled,
		MetricsPath:    settings.Metrics.Path,
		MaxBodyBytes:   int64(settings.Analysis.MaxTextLength) + 1024,
		ReadTimeout:    settings.Server.ReadTimeout,
		WriteTimeout:   settings.Server.WriteTimeout,
	}
}

// NewServer creates a new REST API server.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Service == nil {
		return nil, fmt.Errorf("pipeline service is required")
	}

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = 2 << 20
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	log := cfg.Logger
	if log == nil {
		log = logging.DefaultLogger()
	}

	checker := health.NewChecker()
	registerSelfTests(checker, cfg.Service)

	server := &Server{
		handlers: NewHandlerContext(cfg.Service, checker, cfg.Version),
		logger:   log,
		config:   cfg,
	}

	server.server = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)),
		Handler:      server.setupRouter(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return server, nil
}

// registerSelfTests adds a known-answer readiness check per cipher.
func registerSelfTests(checker *health.Checker, svc *pipeline.Service) {
	checker.RegisterCheck("vigenere", health.KnownAnswer("vigenere", "lxfopv ef rnhr",
		func(ctx context.Context) (string, error) {
			result, err := svc.EncryptVigenere(ctx, "attack at dawn", "lemon")
			if err != nil {
				return "", err
			}
			return result.Text, nil
		}))
	checker.RegisterCheck("railfence", health.KnownAnswer("railfence", "WEAREDISCOVEREDFLEEATONCE",
		func(ctx context.Context) (string, error) {
			result, err := svc.DecryptRailFence(ctx, "WECRL TEERD SOEEF EAOCA IVDEN", 3, 0)
			if err != nil {
				return "", err
			}
			return result.Text, nil
		}))
}

// setupRouter configures the chi router with all routes and middleware.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(s.RecoveryMiddleware())
	r.Use(s.CorrelationMiddleware()) // before logging so records carry the ID
	r.Use(s.LoggingMiddleware())
	r.Use(metrics.HTTPMiddleware)
	r.Use(CORSMiddleware)

	r.Get("/health", s.handlers.HealthHandler)
	r.Head("/health", s.handlers.HealthHandler)
	r.Get("/health/live", s.handlers.LivenessHandler)
	r.Get("/health/ready", s.handlers.ReadinessHandler)
	r.Get("/health/startup", s.handlers.StartupHandler)

	if s.config.MetricsEnabled {
		r.Method(http.MethodGet, s.config.MetricsPath, metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeMiddleware)
		r.Use(s.BodyLimitMiddleware())

		r.Post("/vigenere/encrypt", s.handlers.VigenereEncryptHandler)
		r.Post("/vigenere/decrypt", s.handlers.VigenereDecryptHandler)
		r.Post("/vigenere/friedman", s.handlers.FriedmanHandler)
		r.Post("/vigenere/kasiski", s.handlers.KasiskiHandler)

		r.Post("/railfence/encrypt", s.handlers.RailFenceEncryptHandler)
		r.Post("/railfence/decrypt", s.handlers.RailFenceDecryptHandler)

		r.Post("/analysis/ic", s.handlers.CoincidenceHandler)
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the REST API server and blocks until it stops.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Stop is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Starting HTTP server", "addr", ln.Addr().String())
	s.handlers.health.MarkStarted()

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the REST API server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	s.handlers.health.MarkNotStarted()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Errorf("Failed to shutdown server: %v", err)
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

// Run serves until ctx is canceled, then shuts down within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Stop(shutdownCtx); err != nil {
		return err
	}
	return <-errChan
}
