package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"chandabaj-reporting-system/pkg/response"

	"github.com/redis/go-redis/v9"
)

// SubmissionRateLimiter caps report submissions per client IP within a
// rolling 24h window. Submitters are anonymous, so the IP is the only
// stable key available.
func SubmissionRateLimiter(rdb *redis.Client, keyPrefix string, limit int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if ip == "" {
				response.Error(w, http.StatusBadRequest, "Could not determine client address", "")
				return
			}

			key := keyPrefix + ":" + ip
			ctx := r.Context()

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Rate limiting is protective, not load-bearing: let the
				// request through if redis is unreachable.
				LogWarn(GetTraceID(r), "Rate limiter unavailable, allowing request", err)
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				if err := rdb.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
					LogWarn(GetTraceID(r), "Failed to set rate limit TTL", err)
				}
			}

			if count > int64(limit) {
				retryAfter, _ := rdb.TTL(ctx, key).Result()
				w.Header().Set("Retry-After", retryAfter.Round(time.Second).String())
				response.Error(w, http.StatusTooManyRequests, "Submission limit reached, try again later", "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
