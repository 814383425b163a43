// Package stubserver is a local stand-in for the inference and weather
// services. It honours the same HTTP contracts with deterministic answers so
// the client can be developed and tested without the real models or a
// weather provider key.
package stubserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// Server holds the stub service's dependencies and router.
type Server struct {
	Logger *slog.Logger

	// DefaultLocation is used when a weather request names no location.
	DefaultLocation string

	// Now is the clock used for generated weather. Tests pin it.
	Now func() time.Time

	// Limiter throttles every route when set. Excess requests get 429.
	Limiter *rate.Limiter

	router *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the clock used for generated weather.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.Now = now
	}
}

// WithDefaultLocation overrides the location used when none is given.
func WithDefaultLocation(location string) Option {
	return func(s *Server) {
		if location != "" {
			s.DefaultLocation = location
		}
	}
}

// WithRateLimit throttles the service to rps requests per second with the
// given burst. A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 {
			s.Limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
		}
	}
}

// NewServer creates a Server. Call MountRoutes before serving.
func NewServer(logger *slog.Logger, opts ...Option) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	s := &Server{
		Logger:          logger,
		DefaultLocation: "Dhaka",
		Now:             time.Now,
		router:          chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully with a 10 second deadline.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.Logger.Info("stub service listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		s.Logger.Info("stub service shutting down")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	s.Logger.Info("stub service stopped cleanly")
	return nil
}
