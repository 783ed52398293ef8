package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/noah-isme/sales-commission/internal/common"
)

// NewRedisLimiter builds a fixed-window limiter sharing its counters through Redis.
func NewRedisLimiter(client *redis.Client, prefix string, window time.Duration, max int) (*limiter.Limiter, error) {
	store, err := limiterredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: prefix})
	if err != nil {
		return nil, err
	}
	return limiter.New(store, limiter.Rate{Period: window, Limit: int64(max)}), nil
}

// BySubject keys requests by the authenticated subject, falling back to the client IP.
func BySubject(r *http.Request) string {
	if sub, ok := common.Subject(r.Context()); ok && sub != "" {
		return "sub:" + sub
	}
	return ByClientIP(r)
}

// ByClientIP keys requests by client IP.
func ByClientIP(r *http.Request) string {
	return "ip:" + common.ClientIP(r)
}

// Handler enforces rate limits before delegating to the next handler.
type Handler struct {
	Limiter *limiter.Limiter
	Key     func(*http.Request) string
	// OnError is called when the store fails; the request is then let through.
	OnError func(error)
}

// Middleware implements the http.Handler middleware interface.
func (h Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Limiter == nil || h.Key == nil {
			next.ServeHTTP(w, r)
			return
		}
		res, err := h.Limiter.Get(r.Context(), h.Key(r))
		if err != nil {
			if h.OnError != nil {
				h.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}

		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
		headers.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset, 10))

		if res.Reached {
			retryAfter := res.Reset - time.Now().Unix()
			if retryAfter < 0 {
				retryAfter = 0
			}
			headers.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
