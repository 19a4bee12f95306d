package web

import (
	"net"
	"net/http"
	"strings"

	"innovatehub-platform/internal/infra/metrics"
	red "innovatehub-platform/internal/infra/redis"
)

// rateLimitMiddleware applies a fixed-window per-client cap to the tool
// endpoints. A broken limiter backend fails open: the tools stay reachable.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	if s.limiter == nil || !s.rateCfg.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := red.ToolKey(clientIP(r), r.URL.Path)
		ok, err := s.limiter.Allow(r.Context(), key, s.rateCfg.PerWindow, s.rateCfg.Window)
		if err != nil {
			s.log.Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			metrics.IncRateLimited(r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// first hop is the client; proxies append their own
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
