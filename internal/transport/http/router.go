// Package http is the admin transport: a chi router over the catalog
// usecases and queries, JSON in and out, domain sentinels mapped to stable
// error codes.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/light-bringer/catalog-service/internal/pkg/logger"
)

// NewRouter assembles the admin API.
func NewRouter(
	categories *CategoryHandler,
	attributes *AttributeHandler,
	products *ProductHandler,
	variants *VariantHandler,
	log *logger.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", categories.Routes)
		r.Route("/attributes", attributes.Routes)
		r.Route("/products", products.Routes)
		r.Route("/variants", variants.Routes)
	})

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

// actor identifies the admin performing a write for the audit trail. The
// gateway in front of this service sets the header after authentication.
func actor(r *http.Request) string {
	if a := r.Header.Get("X-Actor"); a != "" {
		return a
	}
	return "system"
}
