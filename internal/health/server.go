// Package health provides the watch-mode HTTP server: health checks, metrics
// and the live odds feed.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	statusOK       = "ok"
	statusNotReady = "not_ready"

	defaultPort        = "8081"
	defaultMetricsPath = "/metrics"
	readyCheckTimeout  = 3 * time.Second
	shutdownTimeout    = 5 * time.Second
)

// DatabasePinger defines the interface for checking database connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of /health and /live.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse is the body of /ready.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Port        string
	Logger      *logrus.Logger
	DB          DatabasePinger
	Hub         *OddsHub
	Metrics     http.Handler
	MetricsPath string
}

// readyCheck reports a named readiness condition.
type readyCheck struct {
	name string
	run  func(ctx context.Context) (string, bool)
}

// Server serves health probes, metrics and the odds feed for watch mode.
type Server struct {
	cfg    Config
	logger *logrus.Entry
	checks []readyCheck
	ready  atomic.Bool
	server *http.Server
}

// NewServer creates a new health check server.
func NewServer(cfg Config) *Server {
	if cfg.Port == "" {
		cfg.Port = os.Getenv("HEALTH_PORT")
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = defaultMetricsPath
	}

	base := cfg.Logger
	if base == nil {
		base = logrus.New()
		base.SetOutput(io.Discard)
	}

	s := &Server{
		cfg:    cfg,
		logger: base.WithField("component", "health_server"),
	}
	s.checks = append(s.checks, readyCheck{name: "service", run: s.checkService})
	if cfg.Hub != nil {
		s.checks = append(s.checks, readyCheck{name: "odds", run: s.checkOdds})
	}
	if cfg.DB != nil {
		s.checks = append(s.checks, readyCheck{name: "database", run: s.checkDatabase})
	}
	return s
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	return s.ready.Load()
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/ready", s.handleReady)
	if s.cfg.Metrics != nil {
		mux.Handle(s.cfg.MetricsPath, s.cfg.Metrics)
	}
	if s.cfg.Hub != nil {
		mux.HandleFunc("/odds", s.handleOdds)
		mux.HandleFunc("/ws/odds", s.cfg.Hub.HandleWebSocket)
	}
	return mux
}

// Start binds the listen port and serves in the background until ctx is done.
// A port that cannot be bound is reported immediately.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.WithFields(logrus.Fields{
		"port":    s.cfg.Port,
		"service": s.cfg.ServiceName,
	}).Info("Health check server starting")

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("Health check server error")
		}
	}()

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(); err != nil {
			s.logger.WithError(err).Warn("Health check server shutdown failed")
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the health check server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("Health check server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    statusOK,
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
		Commit:    s.cfg.Commit,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Service: s.cfg.ServiceName})
}

// handleOdds returns the latest odds update as JSON.
func (s *Server) handleOdds(w http.ResponseWriter, r *http.Request) {
	latest := s.cfg.Hub.Latest()
	if latest == nil {
		http.Error(w, "no odds published yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(latest); err != nil {
		s.logger.WithError(err).Debug("Failed to write odds response")
	}
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	resp := ReadyResponse{
		Status:  statusOK,
		Service: s.cfg.ServiceName,
		Checks:  make(map[string]string, len(s.checks)),
	}
	code := http.StatusOK
	for _, check := range s.checks {
		result, ok := check.run(ctx)
		resp.Checks[check.name] = result
		if !ok {
			resp.Status = statusNotReady
			code = http.StatusServiceUnavailable
		}
	}
	resp.Duration = time.Since(start).String()

	writeJSON(w, code, resp)
}

func (s *Server) checkService(context.Context) (string, bool) {
	if !s.IsReady() {
		return statusNotReady, false
	}
	return statusOK, true
}

func (s *Server) checkOdds(context.Context) (string, bool) {
	if s.cfg.Hub.Latest() == nil {
		return "pending", false
	}
	return statusOK, true
}

func (s *Server) checkDatabase(ctx context.Context) (string, bool) {
	if err := s.cfg.DB.Ping(ctx); err != nil {
		return fmt.Sprintf("error: %v", err), false
	}
	return statusOK, true
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
