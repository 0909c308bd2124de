// Package health serves the ledger's liveness, readiness and metrics endpoints.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Readiness check results
const (
	checkOK          = "ok"
	checkUnreachable = "unreachable"
	checkStopped     = "stopped"
	checkCold        = "cold"
)

// Pinger checks database connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// SchedulerStatus reports whether the standings refresh job is running
type SchedulerStatus interface {
	IsRunning() bool
}

// CacheStatus reports whether the standings cache has been filled
type CacheStatus interface {
	IsWarm() bool
}

// Config holds the dependencies the readiness checks inspect. Nil
// dependencies are not checked.
type Config struct {
	ServiceName string
	Version     string
	Port        string
	Logger      *logrus.Logger
	DB          Pinger
	Scheduler   SchedulerStatus
	Standings   CacheStatus
	Metrics     http.Handler
	MetricsPath string
}

// Status is the body of every health response
type Status struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Server answers liveness and readiness checks for the ledger
type Server struct {
	cfg    Config
	logger *logrus.Entry
}

// NewServer creates a health server. Port defaults to 8080 and MetricsPath
// to /metrics.
func NewServer(cfg Config) *Server {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{cfg: cfg, logger: log.WithField("component", "health")}
}

// Handler returns the health routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/health", s.handleLive)
	mux.HandleFunc("/ready", s.handleReady)
	if s.cfg.Metrics != nil {
		mux.Handle(s.cfg.MetricsPath, s.cfg.Metrics)
	}
	return mux
}

// Run serves until ctx is done, then shuts the listener down
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("port", s.cfg.Port).Info("Health server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("health server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("health server shutdown: %w", err)
	}
	return nil
}

// Readiness runs every configured check. The ledger is ready when the
// database answers, the refresh job runs and the standings cache is warm.
func (s *Server) Readiness(ctx context.Context) (Status, bool) {
	checks := make(map[string]string, 3)
	ready := true

	if s.cfg.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := s.cfg.DB.Ping(pingCtx)
		cancel()
		checks["database"] = checkOK
		if err != nil {
			s.logger.WithError(err).Warn("Readiness database check failed")
			checks["database"] = checkUnreachable
			ready = false
		}
	}

	if s.cfg.Scheduler != nil {
		checks["scheduler"] = checkOK
		if !s.cfg.Scheduler.IsRunning() {
			checks["scheduler"] = checkStopped
			ready = false
		}
	}

	if s.cfg.Standings != nil {
		checks["standings"] = checkOK
		if !s.cfg.Standings.IsWarm() {
			checks["standings"] = checkCold
			ready = false
		}
	}

	status := s.status("ok")
	if !ready {
		status.Status = "not_ready"
	}
	status.Checks = checks
	return status, ready
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.status("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status, ready := s.Readiness(r.Context())
	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, status)
}

func (s *Server) status(state string) Status {
	return Status{Status: state, Service: s.cfg.ServiceName, Version: s.cfg.Version}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, body Status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Warn("Failed to write health response")
	}
}
