package audit

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/noah-isme/sales-commission/internal/common"
	"github.com/noah-isme/sales-commission/internal/obs"
)

// Recorder audits write requests after they have been handled.
type Recorder struct {
	Service Service
	OnError func(error)
}

// Middleware records every non-read request passing through next.
func (rec Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rec.Service.Enabled || isRead(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		sr := obs.NewStatusRecorder(w)
		next.ServeHTTP(sr, r)

		route := obs.RouteOf(r)
		actor, _ := common.Subject(r.Context())
		entry := Entry{
			Actor:        actor,
			Action:       r.Method + " " + valueOr(route, r.URL.Path),
			ResourceType: resourceFromRoute(route),
			ResourceID:   chi.URLParam(r, "id"),
			Method:       r.Method,
			Path:         r.URL.Path,
			Status:       sr.Status(),
			IP:           common.ClientIP(r),
			RequestID:    middleware.GetReqID(r.Context()),
		}
		if q := r.URL.RawQuery; q != "" {
			entry.Metadata = map[string]any{"query": q}
		}
		if err := rec.Service.Record(r.Context(), entry); err != nil && rec.OnError != nil {
			rec.OnError(err)
		}
	})
}

func isRead(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// resourceFromRoute maps "/api/v1/lines/{id}/commission-status" to "lines.commission-status".
func resourceFromRoute(route string) string {
	route = strings.Trim(route, "/ ")
	if route == "" {
		return "unknown"
	}
	var parts []string
	for _, seg := range strings.Split(route, "/") {
		if seg == "" || strings.HasPrefix(seg, "{") || seg == "*" {
			continue
		}
		parts = append(parts, seg)
	}
	if len(parts) >= 2 && parts[0] == "api" && parts[1] == "v1" {
		parts = parts[2:]
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, ".")
}
