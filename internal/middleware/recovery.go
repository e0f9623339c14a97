package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/agrimitra/agrimitra/internal/metrics"
	"github.com/agrimitra/agrimitra/internal/models"
)

// Recovery turns a handler panic into a 500. Browser requests get a plain
// page, API callers the JSON error envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.PanicsRecovered.WithLabelValues(route).Inc()
			log.Error().
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Str("request_id", GetRequestID(r.Context())).
				Str("route", route).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			if wantsHTML(r) {
				http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
				return
			}
			models.WriteError(w, http.StatusInternalServerError, "internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
