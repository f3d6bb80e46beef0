package middleware

import "net/http"

// MaxBody returns middleware that caps the request body at n bytes.
// Oversized bodies make the JSON decoder fail, which surfaces as a
// validation error at the handler boundary.
func MaxBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
