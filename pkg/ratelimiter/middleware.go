package ratelimiter

import (
	"math"
	"net/http"
	"strconv"
)

// KeyFunc extracts the limiting key from a request.
type KeyFunc func(r *http.Request) string

// Middleware limits requests per key and sets the X-RateLimit-* headers.
// Denied requests get Retry-After and are passed to denied, or answered with
// a plain 429 when denied is nil. An empty key is never limited.
func Middleware(l *Limiter, keyFunc KeyFunc, denied http.HandlerFunc) func(http.Handler) http.Handler {
	if denied == nil {
		denied = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res := l.Allow(key)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				seconds := int(math.Ceil(res.RetryAfter(l.now()).Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(1, seconds)))
				denied(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
