package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/noah-isme/sales-commission/internal/common"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestHandlerMiddlewareEnforcesLimit(t *testing.T) {
	lim := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 1})
	counted := Handler{Limiter: lim, Key: func(*http.Request) string { return "static" }}.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/factors", nil)
	rr1 := httptest.NewRecorder()
	counted.ServeHTTP(rr1, req.Clone(req.Context()))
	if rr1.Code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", rr1.Code)
	}

	rr2 := httptest.NewRecorder()
	counted.ServeHTTP(rr2, req.Clone(req.Context()))
	if rr2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on second request, got %d", rr2.Code)
	}
	if rr2.Header().Get("X-RateLimit-Limit") != "1" {
		t.Fatalf("unexpected limit header: %q", rr2.Header().Get("X-RateLimit-Limit"))
	}
	if rr2.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestRedisLimiterSharesCounters(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	a, err := NewRedisLimiter(client, "rl", time.Minute, 2)
	if err != nil {
		t.Fatalf("limiter: %v", err)
	}
	b, err := NewRedisLimiter(client, "rl", time.Minute, 2)
	if err != nil {
		t.Fatalf("limiter: %v", err)
	}
	ctx := context.Background()
	if _, err := a.Get(ctx, "sub:admin"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := b.Get(ctx, "sub:admin"); err != nil {
		t.Fatalf("get: %v", err)
	}
	res, err := a.Get(ctx, "sub:admin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !res.Reached {
		t.Fatal("expected the shared limit to be reached on the third call")
	}
}

type failingStore struct{ limiter.Store }

func (failingStore) Get(context.Context, string, limiter.Rate) (limiter.Context, error) {
	return limiter.Context{}, errors.New("store down")
}

func TestHandlerMiddlewareOnError(t *testing.T) {
	lim := limiter.New(failingStore{}, limiter.Rate{Period: time.Second, Limit: 1})
	called := false
	counted := Handler{
		Limiter: lim,
		Key:     func(*http.Request) string { return "err" },
		OnError: func(error) { called = true },
	}.Middleware(okHandler())

	rr := httptest.NewRecorder()
	counted.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected handler to proceed on error, got %d", rr.Code)
	}
	if !called {
		t.Fatal("expected OnError callback to be invoked")
	}
}

func TestBySubjectFallsBackToIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:1234"
	if got := BySubject(req); got != "ip:10.0.0.7" {
		t.Fatalf("unexpected key %q", got)
	}
	req = req.WithContext(common.WithSubject(req.Context(), "admin"))
	if got := BySubject(req); got != "sub:admin" {
		t.Fatalf("unexpected key %q", got)
	}
}
