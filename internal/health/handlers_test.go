package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sales-commission/internal/health"
)

type probes struct {
	db    error
	redis error
}

func (p probes) PingDB(context.Context, time.Duration) error    { return p.db }
func (p probes) PingRedis(context.Context, time.Duration) error { return p.redis }

type factorCount struct {
	n   int
	err error
}

func (f factorCount) ActiveFactorCount(context.Context) (int, error) { return f.n, f.err }

func TestLive(t *testing.T) {
	rr := httptest.NewRecorder()
	health.Handler{}.Live(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}

func TestReady(t *testing.T) {
	cases := []struct {
		name    string
		handler health.Handler
		code    int
		want    map[string]string
	}{
		{
			name:    "no checker",
			handler: health.Handler{},
			code:    http.StatusServiceUnavailable,
		},
		{
			name:    "all up with populated table",
			handler: health.Handler{Checker: probes{}, Factors: factorCount{n: 7}},
			code:    http.StatusOK,
			want:    map[string]string{"db": "ok", "redis": "ok", "factor_table": "7 active"},
		},
		{
			name:    "empty table stays ready",
			handler: health.Handler{Checker: probes{}, Factors: factorCount{}},
			code:    http.StatusOK,
			want:    map[string]string{"db": "ok", "redis": "ok", "factor_table": "empty"},
		},
		{
			name:    "factor count error is reported only",
			handler: health.Handler{Checker: probes{}, Factors: factorCount{err: errors.New("relation missing")}},
			code:    http.StatusOK,
			want:    map[string]string{"db": "ok", "redis": "ok", "factor_table": "relation missing"},
		},
		{
			name:    "database down",
			handler: health.Handler{Checker: probes{db: errors.New("db down")}, Factors: factorCount{n: 1}, DBTimeout: 10 * time.Millisecond},
			code:    http.StatusServiceUnavailable,
			want:    map[string]string{"db": "db down", "redis": "ok"},
		},
		{
			name:    "redis down",
			handler: health.Handler{Checker: probes{redis: errors.New("redis down")}, RedisTimeout: 10 * time.Millisecond},
			code:    http.StatusServiceUnavailable,
			want:    map[string]string{"db": "ok", "redis": "redis down"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tc.handler.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			require.Equal(t, tc.code, rr.Code)
			if tc.want == nil {
				return
			}
			var got map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadyWhileDraining(t *testing.T) {
	t.Cleanup(func() { health.SetReady(true) })
	handler := health.Handler{Checker: probes{}}

	health.SetReady(false)
	rr := httptest.NewRecorder()
	handler.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Contains(t, rr.Body.String(), "shutting down")

	health.SetReady(true)
	rr = httptest.NewRecorder()
	handler.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}
