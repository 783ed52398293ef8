package security

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/noah-isme/sales-commission/internal/common"
)

// Headers sets response headers suited to a JSON API that also serves file
// downloads.
type Headers struct {
	// HSTSMaxAge enables Strict-Transport-Security on TLS requests when > 0.
	HSTSMaxAge int
}

// Middleware attaches the headers before next writes its response.
func (h Headers) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		hdr.Set("X-Content-Type-Options", "nosniff")
		hdr.Set("X-Frame-Options", "DENY")
		hdr.Set("Referrer-Policy", "no-referrer")
		hdr.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		if strings.HasPrefix(r.URL.Path, "/api/") {
			hdr.Set("Cache-Control", "no-store")
		}
		if h.HSTSMaxAge > 0 && isHTTPS(r) {
			hdr.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(h.HSTSMaxAge)+"; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// BodyLimit caps request bodies at Max bytes.
type BodyLimit struct {
	Max int64
}

// Middleware answers 413 when the declared length exceeds Max and bounds the
// reader for bodies of unknown length.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.Max <= 0 || r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > b.Max {
			common.JSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large", map[string]int64{"max_bytes": b.Max})
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, b.Max)
		next.ServeHTTP(w, r)
	})
}
