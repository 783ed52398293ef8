package common

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Idem rejects a replayed Idempotency-Key on write endpoints. Keys are scoped
// to caller, method and path, so one key reused on two orders does not
// collide. A request that ends in a 5xx releases its key so the client may
// retry it.
type Idem struct {
	R   *redis.Client
	TTL time.Duration
}

const idemPending = "pending"

func idemKey(r *http.Request, header string) string {
	sub, _ := Subject(r.Context())
	sum := sha256.Sum256([]byte(sub + "|" + r.Method + "|" + r.URL.Path + "|" + header))
	return "idem:" + hex.EncodeToString(sum[:])
}

// Middleware wraps next. Requests without the header pass through untouched.
func (i Idem) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Idempotency-Key")
		if header == "" || i.R == nil {
			next.ServeHTTP(w, r)
			return
		}
		key := idemKey(r, header)
		ok, err := i.R.SetNX(r.Context(), key, idemPending, i.TTL).Result()
		if err != nil {
			JSONError(w, http.StatusInternalServerError, CodeInternal, "idempotency store error", nil)
			return
		}
		if !ok {
			prior, _ := i.R.Get(r.Context(), key).Result()
			JSONError(w, http.StatusConflict, "IDEMPOTENT_REPLAY", "duplicate request", map[string]string{"original_status": prior})
			return
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			// runs on panic too, so a crashed request never pins its key
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if p := recover(); p != nil {
				_ = i.R.Del(ctx, key).Err()
				panic(p)
			}
			if sw.status >= http.StatusInternalServerError {
				_ = i.R.Del(ctx, key).Err()
				return
			}
			_ = i.R.Set(ctx, key, strconv.Itoa(sw.status), i.TTL).Err()
		}()
		next.ServeHTTP(sw, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
