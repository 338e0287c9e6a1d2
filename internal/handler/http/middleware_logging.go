package http

import (
	"net/http"
	"time"

	"github.com/aturgenev/identity-api/internal/logger"
)

// withLogging emits one access-log entry per request after the handler
// chain completes. The entry carries the route, the caller address and the
// response outcome next to the trace id already present in the
// request-scoped logger installed by withTraceID.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		lw := &responseWriter{ResponseWriter: w}

		start := time.Now()
		next.ServeHTTP(lw, r)

		log.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("remote_addr", r.RemoteAddr).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Msg("request served")
	}
	return http.HandlerFunc(fn)
}
