package obs_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/obs"
)

func TestHTTPMetricsLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("commission", []float64{1, 10}, registry)
	router := chi.NewRouter()
	router.Use(obs.HTTPObs{Metrics: metrics}.Middleware)
	router.Get("/api/v1/factors/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/factors/42", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rr.Code)
	}

	total := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodGet, "/api/v1/factors/{id}", "204"))
	if total != 1 {
		t.Fatalf("expected counter to be 1, got %v", total)
	}
	if samples := testutil.CollectAndCount(metrics.ReqDur); samples == 0 {
		t.Fatalf("expected histogram sample")
	}
	if val := testutil.ToFloat64(metrics.InFlight); val != 0 {
		t.Fatalf("expected no in-flight requests, got %v", val)
	}
}

func TestHTTPMetricsReuseRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := obs.NewHTTPMetrics("commission", nil, registry)
	second := obs.NewHTTPMetrics("commission", nil, registry)
	if first.ReqTotal != second.ReqTotal {
		t.Fatalf("expected second registration to reuse the existing counter")
	}
}

func TestParseBucketsCSV(t *testing.T) {
	got := obs.ParseBucketsCSV("10, x, -1, 250,0")
	if len(got) != 2 || got[0] != 10 || got[1] != 250 {
		t.Fatalf("unexpected buckets %v", got)
	}
	if obs.ParseBucketsCSV("  ") != nil {
		t.Fatalf("expected nil for blank input")
	}
}

func TestRequestLoggerUsesRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	router := chi.NewRouter()
	router.Use(obs.RequestLogger{Logger: zerolog.New(&buf)}.Middleware)
	router.Get("/api/v1/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/7", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if entry["route"] != "/api/v1/orders/{id}" {
		t.Fatalf("unexpected route %v", entry["route"])
	}
	if entry["level"] != "error" {
		t.Fatalf("expected error level for 5xx, got %v", entry["level"])
	}
}
