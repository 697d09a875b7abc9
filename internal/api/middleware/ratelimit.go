package middleware

import (
	"net"
	"net/http"
	"time"

	"inventario/internal/common"

	"github.com/redis/go-redis/v9"
)

// RateLimit caps requests per client IP per second, backed by redis. Used on
// the login and register routes to slow down credential guessing. A redis
// error lets the request through; the limiter is advisory, not a gate.
func RateLimit(rdb *redis.Client, maxRequests int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + clientIP(r)

			count, err := rdb.Get(r.Context(), key).Int()
			if err == nil && count >= maxRequests {
				common.RespondWithError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			pipe := rdb.Pipeline()
			pipe.Incr(r.Context(), key)
			pipe.Expire(r.Context(), key, time.Second)
			pipe.Exec(r.Context())

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP relies on chi's RealIP middleware having rewritten RemoteAddr for
// proxied requests.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
