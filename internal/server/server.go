// Package server exposes the launch dashboard over HTTP.
//
// It serves the dashboard page, a JSON API for control changes and chart specs,
// and PNG renderings of the charts. Every browser gets its own dashboard shell,
// identified by a session cookie; events for one session are handled one at a time.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rewired-gh/launchdash/internal/dashboard"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/storage"
)

const sessionCookie = "launchdash_session"

// Options configures the HTTP runtime.
type Options struct {
	Addr            string
	Title           string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
	MaxSessions     int
	ChartWidth      int
	ChartHeight     int
}

// Server serves the dashboard for one immutable dataset.
type Server struct {
	opts     Options
	dataset  *storage.Dataset
	slider   dashboard.Slider
	layout   dashboard.Layout
	sessions *sessionStore
	http     *http.Server
}

// New creates a Server. The dataset is shared read-only by all sessions.
func New(ds *storage.Dataset, slider dashboard.Slider, opts Options) *Server {
	if opts.ChartWidth <= 0 {
		opts.ChartWidth = 800
	}
	if opts.ChartHeight <= 0 {
		opts.ChartHeight = 480
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 1000
	}

	s := &Server{
		opts:    opts,
		dataset: ds,
		slider:  slider,
		layout:  dashboard.NewLayout(ds.Records(), slider),
	}
	s.sessions = newSessionStore(opts.SessionTTL, opts.MaxSessions, func() *dashboard.Shell {
		return dashboard.New(ds, slider)
	})
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/layout", s.handleLayout)
	mux.HandleFunc("POST /api/selection/site", s.handleSelectSite)
	mux.HandleFunc("POST /api/selection/payload", s.handleSelectPayload)
	mux.HandleFunc("GET /api/charts/pie", s.handlePieSpec)
	mux.HandleFunc("GET /api/charts/scatter", s.handleScatterSpec)
	mux.HandleFunc("GET /charts/{file}", s.handleChartPNG)
	return logRequests(mux)
}

// ListenAndServe serves until the server is shut down.
func (s *Server) ListenAndServe() error {
	logger.Info("Dashboard listening on http://%s", s.opts.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	logger.Info("Dashboard stopped")
	return nil
}

// session returns the caller's session, creating one (and its cookie) if needed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.get(c.Value); ok {
			return sess
		}
	}

	sess := s.sessions.create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	logger.Debug("Created session %s (%d active)", sess.id, s.sessions.len())
	return sess
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Slog().Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
