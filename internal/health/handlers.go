package health

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/noah-isme/sales-commission/internal/common"
)

var ready atomic.Bool

func init() { ready.Store(true) }

// SetReady flips the readiness flag, e.g. while draining on shutdown.
func SetReady(v bool) { ready.Store(v) }

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	PingDB(ctx context.Context, timeout time.Duration) error
	PingRedis(ctx context.Context, timeout time.Duration) error
}

// FactorCounter reports how many factor entries are active. An empty table
// does not fail readiness; lookups then resolve to 0.
type FactorCounter interface {
	ActiveFactorCount(ctx context.Context) (int, error)
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker      Checker
	Factors      FactorCounter
	DBTimeout    time.Duration
	RedisTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.Checker == nil {
		common.JSONError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "dependencies unavailable", nil)
		return
	}
	if !ready.Load() {
		common.JSONError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "shutting down", nil)
		return
	}
	ctx := r.Context()
	status := map[string]string{"db": "ok", "redis": "ok"}
	healthy := true
	if err := h.Checker.PingDB(ctx, h.dbTimeout()); err != nil {
		status["db"] = err.Error()
		healthy = false
	}
	if err := h.Checker.PingRedis(ctx, h.redisTimeout()); err != nil {
		status["redis"] = err.Error()
		healthy = false
	}
	if h.Factors != nil && healthy {
		n, err := h.Factors.ActiveFactorCount(ctx)
		switch {
		case err != nil:
			status["factor_table"] = err.Error()
		case n == 0:
			status["factor_table"] = "empty"
		default:
			status["factor_table"] = strconv.Itoa(n) + " active"
		}
	}
	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	common.JSON(w, code, status)
}

func (h Handler) dbTimeout() time.Duration {
	if h.DBTimeout <= 0 {
		return 500 * time.Millisecond
	}
	return h.DBTimeout
}

func (h Handler) redisTimeout() time.Duration {
	if h.RedisTimeout <= 0 {
		return 300 * time.Millisecond
	}
	return h.RedisTimeout
}
