package factor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newRouter(svc *Service, admin func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	NewHandler(HandlerConfig{Service: svc, Logger: zerolog.Nop()}).Routes(r, admin)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlersLifecycle(t *testing.T) {
	fx := newFixture(t, defaultTable()...)
	router := newRouter(fx.svc, nil)

	rec := do(t, router, http.MethodPost, "/factors", `{"markup_percentage":40,"commission_factor":0.01}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data struct {
			ID          string  `json:"id"`
			Markup      int     `json:"markup_percentage"`
			Factor      float64 `json:"commission_factor"`
			DisplayName string  `json:"display_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, 40, created.Data.Markup)

	rec = do(t, router, http.MethodPost, "/factors", `{"markup_percentage":40,"commission_factor":0.02}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"VALIDATION_ERROR"`)
	require.Contains(t, rec.Body.String(), `"rule":"unique"`)

	rec = do(t, router, http.MethodPut, "/factors/"+created.Data.ID, `{"commission_factor":0.012}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/factors/resolve?markup=41", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"commission_factor":0.012`)
	require.Contains(t, rec.Body.String(), `"outcome":"above_max"`)

	rec = do(t, router, http.MethodDelete, "/factors/"+created.Data.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"active":false`)

	rec = do(t, router, http.MethodGet, "/factors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 3)

	rec = do(t, router, http.MethodGet, "/factors?include_inactive=true", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 4)

	rec = do(t, router, http.MethodGet, "/factors/"+created.Data.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlersRejectBadInput(t *testing.T) {
	fx := newFixture(t)
	router := newRouter(fx.svc, nil)

	require.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/factors/resolve?markup=abc", "").Code)
	require.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/factors/not-a-uuid", "").Code)
	require.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/factors", `{"markup":1}`).Code)
	require.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/factors/7c0f7f44-54a4-4ad5-9d1f-3c3a4a1c0f0e", "").Code)
}

func TestAdminMiddlewareGuardsWrites(t *testing.T) {
	fx := newFixture(t)
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
	}
	router := newRouter(fx.svc, deny)

	require.Equal(t, http.StatusForbidden, do(t, router, http.MethodPost, "/factors", `{}`).Code)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/factors", "").Code)
}

func TestHandlerWithoutService(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(HandlerConfig{}).List(rec, httptest.NewRequest(http.MethodGet, "/factors", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
