package web

import (
	"net/http"
	"strings"
)

// CORS applies the allowed-origin policy and answers preflight requests for
// every route, independently of endpoint logic. Allowed origins are explicit
// configuration, not a hardcoded wildcard; ["*"] reproduces the permissive
// default.
func CORS(allowedOrigins []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowAny := false
			allowed := false
			for _, ao := range allowedOrigins {
				ao = strings.TrimSpace(ao)
				if ao == "*" {
					allowAny = true
					break
				}
				if ao == origin {
					allowed = true
					break
				}
			}

			if allowAny {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
