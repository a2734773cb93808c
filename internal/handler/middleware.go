package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// SignInThrottle caps sign-in attempts per email+IP using Redis counters.
// Without a Redis client the throttle is a no-op, matching a dev setup.
type SignInThrottle struct {
	redis        *redis.Client
	maxPerMinute int
	window       time.Duration
}

// NewSignInThrottle creates a throttle; client may be nil.
func NewSignInThrottle(client *redis.Client, maxPerMinute int) *SignInThrottle {
	return &SignInThrottle{redis: client, maxPerMinute: maxPerMinute, window: time.Minute}
}

// Allow records one attempt for the given email and request and reports
// whether it is within the limit. Redis failures fail open: a broken cache
// must not lock every admin out.
func (t *SignInThrottle) Allow(ctx context.Context, email string, r *http.Request) bool {
	if t.redis == nil {
		return true
	}

	key := "signin_attempts:" + strings.ToLower(email) + ":" + clientIP(r)
	count, err := t.redis.Incr(ctx, key).Result()
	if err != nil {
		slog.Warn("sign-in throttle unavailable", "error", err)
		return true
	}
	if count == 1 {
		if err := t.redis.Expire(ctx, key, t.window).Err(); err != nil {
			slog.Warn("sign-in throttle expire failed", "error", err)
		}
	}
	return count <= int64(t.maxPerMinute)
}

// clientIP extracts the client IP, trusting one reverse proxy hop.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[len(parts)-1])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
