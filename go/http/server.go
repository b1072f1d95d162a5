// Package http serves HTTP routes with request ids, health probes and graceful shutdown.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/malonaz/badges/go/health"
)

// Opts holds HTTP server options.
type Opts struct {
	Health              *health.Opts  `group:"Health" namespace:"health" env-namespace:"HEALTH"`
	Port                int           `long:"port" env:"PORT" description:"Port to serve HTTP on" default:"8080"`
	ReadTimeout         time.Duration `long:"read-timeout" env:"READ_TIMEOUT" description:"HTTP read timeout" default:"30s"`
	WriteTimeout        time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" description:"HTTP write timeout" default:"30s"`
	IdleTimeout         time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT"  description:"HTTP idle timeout" default:"120s"`
	GracefulStopTimeout int           `long:"graceful-stop-timeout" env:"GRACEFUL_STOP_TIMEOUT" description:"How many seconds to wait for graceful stop." default:"30"`
}

// Server holds the HTTP server state.
type Server struct {
	opts         *Opts
	log          *slog.Logger
	httpServer   *http.Server
	mux          *http.ServeMux
	healthServer *health.Server
	patternSet   map[string]struct{}
}

// NewServer creates a new HTTP server. Readiness runs checks.
func NewServer(opts *Opts, checks ...health.Check) *Server {
	healthOpts := opts.Health
	if healthOpts == nil {
		healthOpts = &health.Opts{CheckTimeout: 5 * time.Second}
	}
	s := &Server{
		opts:         opts,
		log:          slog.Default(),
		mux:          http.NewServeMux(),
		healthServer: health.NewServer(healthOpts, checks...),
		patternSet:   map[string]struct{}{},
	}
	s.mux.HandleFunc("GET /liveness", s.healthServer.Liveness)
	s.mux.HandleFunc("GET /readiness", s.healthServer.Readiness)
	return s
}

func (s *Server) WithLogger(logger *slog.Logger) *Server {
	s.log = logger
	s.healthServer.WithLogger(logger)
	return s
}

// RegisterRoute registers handler for pattern.
func (s *Server) RegisterRoute(pattern string, handler http.Handler) error {
	if _, ok := s.patternSet[pattern]; ok {
		return fmt.Errorf("duplicate pattern registered [%s]", pattern)
	}
	s.patternSet[pattern] = struct{}{}
	s.mux.Handle(pattern, handler)
	return nil
}

func (s *Server) GetHealthServer() *health.Server {
	return s.healthServer
}

// Handler returns the server's routes wrapped with the request id middleware.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.mux)
}

// Serve the HTTP server. It returns once the server is stopped.
func (s *Server) Serve(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.opts.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	s.log.InfoContext(ctx, "starting HTTP server", "port", s.opts.Port)
	s.healthServer.MarkReady()
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server exited unexpectedly: %w", err)
	}
	return nil
}

// Stop immediately stops the server.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	s.log.Info("stopping HTTP server")
	return s.httpServer.Close()
}

// GracefulStop gracefully stops the server.
func (s *Server) GracefulStop() error {
	if s.httpServer == nil {
		return nil
	}
	s.log.Info("gracefully stopping HTTP server")
	duration := time.Duration(s.opts.GracefulStopTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		s.log.Warn("graceful shutdown timed out")
		// Force close any remaining connections
		return s.Stop()
	}
	return err
}
