package ratelimit

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/tendant/breadsaver/pkg/errors"
)

// Handler limits requests per client IP. Mount chi's RealIP middleware
// upstream when running behind a proxy.
func (l *Limiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.Allow(ip) {
			slog.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip, "method", r.Method, "path", r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(l.retryAfter()))
			apperrors.Render(w, r, apperrors.RateLimited())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// retryAfter is the seconds until one token is refilled
func (l *Limiter) retryAfter() int {
	if l.perMinute <= 0 {
		return int(time.Hour.Seconds())
	}
	return int(math.Ceil(60 / l.perMinute))
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
