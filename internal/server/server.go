// SPDX-License-Identifier: EPL-2.0

// Package server exposes beat swapping over HTTP. Every endpoint takes an
// audio file as the request body and answers synchronously.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/formats"
	"github.com/ik5/beatswap/internal/config"
)

// DefaultMaxUpload bounds request bodies.
const DefaultMaxUpload = 256 << 20

// Options configure a Server. Zero fields fall back to config.Default()
// and a full format registry.
type Options struct {
	Config   config.Config
	Registry *audio.Registry
	// Cache stores detected beatmaps; nil disables caching.
	Cache     *beatmap.Cache
	MaxUpload int64
	Logger    *slog.Logger
}

// Server is the HTTP front end.
type Server struct {
	cfg       config.Config
	reg       *audio.Registry
	cache     *beatmap.Cache
	maxUpload int64
	router    *chi.Mux
	logger    *slog.Logger
}

func New(opts Options) *Server {
	s := &Server{
		cfg:       opts.Config,
		reg:       opts.Registry,
		cache:     opts.Cache,
		maxUpload: opts.MaxUpload,
		router:    chi.NewRouter(),
		logger:    opts.Logger,
	}
	if s.cfg == (config.Config{}) {
		s.cfg = config.Default()
	}
	if s.reg == nil {
		s.reg = formats.NewRegistry()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUpload
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)

	r.Post("/beatswap", s.handleBeatswap)
	r.Post("/sidechain", s.handleSidechain)
	r.Post("/beatmap", s.handleBeatmap)
}

func (s *Server) Handler() http.Handler { return s.router }

// logRequests writes one slog record per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			slog.String("id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("took", time.Since(start)),
		)
	})
}

// Run serves on the configured port until ctx is done, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.Int("port", s.cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
