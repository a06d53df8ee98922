package http

import (
	"net/http"
	"time"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
)

// withLogging writes one summary line per request through the request-scoped
// logger, so every entry carries the trace id stamped upstream.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
