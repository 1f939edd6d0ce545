package api

import (
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tablelog/tablelog-server/internal/http/response"
	"github.com/tablelog/tablelog-server/internal/ratelimit"
)

const rateLimitMessage = "Too many requests. Please try again later."

// RateLimiter is the per-client limiter guarding gateway-backed routes.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter allows ratePerInterval requests per interval per client,
// with the given burst.
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *RateLimiter {
	rps := float64(ratePerInterval) / interval.Seconds()
	return ratelimit.New(rps, burst)
}

// rateLimitOperation is the huma form of RateLimitMiddleware.
func (s *Server) rateLimitOperation(ctx huma.Context, next func(huma.Context)) {
	key := clientIP(ctx.RemoteAddr())
	if !s.placesLimiter.Allow(key) {
		s.logger.Warn("Rate limit exceeded", "ip", key, "path", ctx.URL().Path)
		_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, rateLimitMessage)
		return
	}
	next(ctx)
}

// RateLimitMiddleware rate limits plain router handlers by client IP.
// Returns 429 Too Many Requests when the limit is exceeded.
func (s *Server) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r.RemoteAddr)
		if !s.placesLimiter.Allow(key) {
			s.logger.Warn("Rate limit exceeded", "ip", key, "path", r.URL.Path)
			response.TooManyRequests(w, rateLimitMessage, s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from a remote address. middleware.RealIP has
// already applied X-Forwarded-For and X-Real-IP.
func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
