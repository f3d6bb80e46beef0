package middleware

import (
	"net/http"
	"strings"
)

// corsMaxAge is the Access-Control-Max-Age value in seconds (24 hours).
const corsMaxAge = "86400"

// CORS returns a middleware that allows cross-origin requests from a
// single fixed origin. All methods and headers are permitted from that
// origin and credentials are allowed; every other origin gets no CORS
// headers, so browsers block the response.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	normalized := strings.ToLower(strings.TrimSuffix(allowedOrigin, "/"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// No Origin header = same-origin request, skip CORS
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if normalized == "" || strings.ToLower(origin) != normalized {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")

			// Handle preflight request
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

				requestedHeaders := r.Header.Get("Access-Control-Request-Headers")
				if requestedHeaders == "" {
					requestedHeaders = "Content-Type, Authorization, X-Request-ID"
				}
				w.Header().Set("Access-Control-Allow-Headers", requestedHeaders)
				w.Header().Set("Access-Control-Max-Age", corsMaxAge)

				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
