// internal/adapters/in/http/middleware/cors.go
package middleware

import (
	"net/http"
	"strings"
)

// CORS allows the storefront origin. An empty allowedOrigin falls back to
// "*" for local development; production sets SITE_URL.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	allowedOrigin = strings.TrimRight(strings.TrimSpace(allowedOrigin), "/")
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			// Browsers reject credentials with a wildcard origin.
			if allowedOrigin != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Max-Age", "600")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
