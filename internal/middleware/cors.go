package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS configures cross-origin access for the frontend origins. Preflight
// always gets a 200 so the browser never sees a 403 on OPTIONS.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
