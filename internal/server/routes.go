package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/agrimitra/agrimitra/internal/handler"
	"github.com/agrimitra/agrimitra/internal/middleware"
	"github.com/agrimitra/agrimitra/internal/render"
)

const maxJSONBody = 12 << 20

func (s *Server) setupRoutes(pages *render.Renderer) http.Handler {
	cfg := s.cfg

	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("auth enabled but no API keys configured, all API requests will be rejected")
	}
	log.Info().
		Bool("auth_enabled", cfg.EnableAuth).
		Int("rate_limit_per_minute", cfg.RateLimitPerMinute).
		Str("api_prefix", cfg.APIPrefix).
		Msg("http configuration")

	healthH := handler.NewHealthHandler(cfg.LLMProvider, cfg.Model(), s.registry.ModelAvailable(), len(s.registry.Flows()))
	flowsH := handler.NewFlowsHandler(s.registry, maxJSONBody)
	webH := handler.NewWebHandler(s.registry, pages, cfg.MaxUploadBytes)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(middleware.SecurityHeaders)

	r.Get("/health", healthH.Health)
	r.Handle("/metrics", promhttp.Handler())

	// Web pages
	r.Get("/", webH.Dashboard)
	r.Get("/features/{flow}", webH.Form)
	r.With(s.limiter.Handler).Post("/features/{flow}", webH.Submit)

	// JSON API
	r.Route(cfg.APIPrefix, func(r chi.Router) {
		r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
		if cfg.EnableAuth {
			r.Use(middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
		}
		r.Use(s.limiter.Handler)

		r.Get("/flows", flowsH.List)
		r.Post("/flows/{flow}", flowsH.Run)
	})

	return r
}
