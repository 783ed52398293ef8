package security

import (
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestHeadersMiddleware(t *testing.T) {
	handler := Headers{HSTSMaxAge: 31536000}.Middleware(http.HandlerFunc(ok))

	req := httptest.NewRequest(http.MethodGet, "https://example.com/api/v1/factors", nil)
	req.TLS = &tls.ConnectionState{}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff header, got %q", got)
	}
	if got := rr.Header().Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Fatalf("unexpected hsts header %q", got)
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected no-store on api responses, got %q", got)
	}
}

func TestHeadersSkipHSTSOnPlainHTTP(t *testing.T) {
	handler := Headers{HSTSMaxAge: 60}.Middleware(http.HandlerFunc(ok))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/health/live", nil))
	if rr.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("hsts must not be sent over plain http")
	}
	if rr.Header().Get("Cache-Control") != "" {
		t.Fatal("cache-control is only forced on api routes")
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	req.Header.Set("X-Forwarded-Proto", "HTTPS")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Header().Get("Strict-Transport-Security") == "" {
		t.Fatal("expected hsts behind a tls-terminating proxy")
	}
}

func TestBodyLimit(t *testing.T) {
	var captured string
	var readErr error
	handler := BodyLimit{Max: 5}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		captured, readErr = string(data), err
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/payload", strings.NewReader("hello")))
	if rr.Code != http.StatusOK || captured != "hello" || readErr != nil {
		t.Fatalf("expected body to pass through, got %d %q %v", rr.Code, captured, readErr)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/payload", strings.NewReader("excessive")))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/payload", strings.NewReader("excessive"))
	req.ContentLength = -1
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if readErr == nil {
		t.Fatal("expected read error for unbounded body over the limit")
	}
}
