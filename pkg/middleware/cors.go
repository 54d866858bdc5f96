package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/ParticlesofMind/english-language-analysis/pkg/config"
)

// CORS answers preflight requests and sets Access-Control headers for the
// configured origins.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         cfg.MaxAge,
	})
	return c.Handler
}
