package server

import (
	"net/http"
	"slices"

	"github.com/rs/cors"

	"github.com/gokatarajesh/trivia-api/internal/config"
)

// CORS builds the cross-origin middleware from configuration. Preflight
// requests are answered with 204 and never reach the routes.
func CORS(cfg config.CORS) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	// Credentialed responses cannot carry "*"; echo the caller's origin instead.
	if cfg.AllowCredentials && slices.Contains(cfg.AllowedOrigins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(opts).Handler
}
