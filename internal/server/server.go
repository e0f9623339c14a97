package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/agrimitra/agrimitra/internal/config"
	"github.com/agrimitra/agrimitra/internal/flow"
	"github.com/agrimitra/agrimitra/internal/middleware"
	"github.com/agrimitra/agrimitra/internal/render"
)

type Server struct {
	cfg      *config.Config
	http     *http.Server
	registry *flow.Registry
	limiter  *middleware.RateLimiter
}

func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	registry, err := NewRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithRegistry(cfg, registry)
}

// NewWithRegistry builds the HTTP server around an existing registry.
func NewWithRegistry(cfg *config.Config, registry *flow.Registry) (*Server, error) {
	pages, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("page templates: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		registry: registry,
		limiter:  middleware.NewRateLimiter(cfg.RateLimitPerMinute),
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.setupRoutes(pages),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Duration(cfg.LLMTimeout)*time.Second + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", s.http.Addr).Msg("listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.limiter.Run(gctx, 5*time.Minute)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("graceful shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
