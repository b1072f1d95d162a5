// Package prometheus serves the default prometheus registry on a dedicated port.
package prometheus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Opts holds prometheus opts.
type Opts struct {
	Disable bool `long:"disable" env:"DISABLE" description:"Set to true to disable prometheus metrics"`
	Port    int  `long:"port" env:"PORT" description:"Port to serve Prometheus metrics on" default:"13434"`
}

func (o *Opts) Enabled() bool {
	return o != nil && !o.Disable
}

// Server serves /metrics.
type Server struct {
	opts     *Opts
	log      *slog.Logger
	gatherer prometheus.Gatherer
	server   *http.Server
}

// NewServer returns a server exposing the default registry.
func NewServer(opts *Opts) *Server {
	return &Server{
		opts:     opts,
		log:      slog.Default(),
		gatherer: prometheus.DefaultGatherer,
	}
}

func (s *Server) WithLogger(logger *slog.Logger) *Server {
	s.log = logger
	return s
}

// WithRegistry serves registry instead of the default registry. The build info
// collector is registered on it.
func (s *Server) WithRegistry(registry *prometheus.Registry) *Server {
	registry.MustRegister(collectors.NewBuildInfoCollector())
	s.gatherer = registry
	return s
}

// Handler returns the /metrics handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{ErrorLog: slog.NewLogLogger(s.log.Handler(), slog.LevelWarn)}))
	return mux
}

// Start serves metrics until Stop is called. It returns immediately when metrics are disabled.
func (s *Server) Start(ctx context.Context) error {
	if !s.opts.Enabled() {
		return nil
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.opts.Port),
		Handler: s.Handler(),
	}
	s.log.InfoContext(ctx, "serving Prometheus metrics", "port", s.opts.Port, "endpoint", "/metrics")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("prometheus server exited unexpectedly: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.log.Info("stopping Prometheus server")
	if err := s.server.Shutdown(ctx); err != nil {
		s.log.Error("Prometheus server forced to shutdown", "error", err)
		return err
	}
	return nil
}
