package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ParticlesofMind/english-language-analysis/pkg/tracing"
)

// Trace opens a root span per request, keyed by the request ID. Requests
// slower than slow log their span tree at warn level, the rest at debug.
// It must run inside RequestID.
func Trace(slow time.Duration) func(http.Handler) http.Handler {
	logger := slog.Default().With("component", "trace")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.StartSpan(r.Context(), r.Method+" "+normalizePath(r.URL.Path), GetRequestID(r.Context()))
			next.ServeHTTP(w, r.WithContext(ctx))
			span.End()

			level := slog.LevelDebug
			if slow > 0 && span.Duration() >= slow {
				level = slog.LevelWarn
			}
			span.Log(ctx, logger, level)
		})
	}
}
