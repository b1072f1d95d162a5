package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	statusServing    = "SERVING"
	statusNotServing = "NOT_SERVING"
)

// Opts holds health opts.
type Opts struct {
	CheckTimeout time.Duration `long:"check-timeout" env:"CHECK_TIMEOUT" description:"Timeout of the readiness checks" default:"5s"`
}

// Server answers /liveness and /readiness.
type Server struct {
	opts  *Opts
	log   *slog.Logger
	check Check
	ready atomic.Bool
}

// NewServer returns a health server whose readiness runs checks.
func NewServer(opts *Opts, checks ...Check) *Server {
	return &Server{
		opts:  opts,
		log:   slog.Default(),
		check: CombineChecks(checks...),
	}
}

// WithLogger sets this server's logger.
func (s *Server) WithLogger(logger *slog.Logger) *Server {
	s.log = logger
	return s
}

// MarkReady marks the server as ready to serve traffic.
// This should be called when your application has finished initialization.
func (s *Server) MarkReady() {
	s.ready.Store(true)
	s.log.Info("health server marked as ready")
}

// Liveness reports ok once the server is ready.
func (s *Server) Liveness(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		http.Error(w, "Server not ready", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ok"))
}

type readinessResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Readiness runs the checks and reports their status as JSON.
func (s *Server) Readiness(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		s.log.DebugContext(r.Context(), "readiness check failed: server not ready")
		http.Error(w, "Server not ready", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.CheckTimeout)
	defer cancel()
	response := readinessResponse{Status: statusServing}
	statusCode := http.StatusOK
	if err := s.check(ctx); err != nil {
		s.log.WarnContext(ctx, "readiness check failed", "error", err)
		response = readinessResponse{Status: statusNotServing, Error: err.Error()}
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.log.ErrorContext(ctx, "writing readiness response", "error", err)
	}
}
