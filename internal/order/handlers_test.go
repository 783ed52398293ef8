package order_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sales-commission/internal/order"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _, _ := newService(t)
	r := chi.NewRouter()
	order.NewHandler(order.HandlerConfig{Service: svc, Logger: zerolog.Nop()}).Routes(r, nil)
	return r
}

func send(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type orderEnvelope struct {
	Data order.Order `json:"data"`
}

func TestOrderHandlersFlow(t *testing.T) {
	router := newRouter(t)

	rec := send(router, http.MethodPost, "/orders", `{"name":"S00001","customer_name":"Acme",
		"lines":[{"name":"Switch","quantity":3,"unit_price":100,"unit_cost":80}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created orderEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.InDelta(t, 1.2, created.Data.TotalCommissionAmount, 1e-9)
	orderID := created.Data.ID.String()
	lineID := created.Data.Lines[0].ID.String()

	rec = send(router, http.MethodPost, "/orders/"+orderID+"/lines", `{"name":"Router","unit_price":200,"unit_cost":140}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = send(router, http.MethodPatch, "/lines/"+lineID, `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated orderEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.InDelta(t, 500, updated.Data.Lines[0].LineSubtotal, 1e-9)

	rec = send(router, http.MethodPut, "/lines/"+lineID+"/vendor", `{"vendor_reference":"V-7"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"vendor_reference":"V-7"`)

	rec = send(router, http.MethodPatch, "/orders/"+orderID, `{"state":"sale"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = send(router, http.MethodPut, "/lines/"+lineID+"/vendor", `{"vendor_reference":"V-8"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"VENDOR_LOCKED"`)

	rec = send(router, http.MethodPost, "/lines/"+lineID+"/commission-status/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"commission_payment_status":"paid"`)

	rec = send(router, http.MethodPut, "/lines/"+lineID+"/commission-status", `{"status":"pending"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"commission_payment_status":"pending"`)

	rec = send(router, http.MethodPost, "/orders/"+orderID+"/recompute", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = send(router, http.MethodGet, "/orders/"+orderID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched orderEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Len(t, fetched.Data.Lines, 2)
}

func TestOrderHandlersErrors(t *testing.T) {
	router := newRouter(t)

	require.Equal(t, http.StatusBadRequest, send(router, http.MethodGet, "/orders/xyz", "").Code)
	require.Equal(t, http.StatusNotFound, send(router, http.MethodGet, "/orders/3b241101-e2bb-4255-8caf-4136c566a962", "").Code)
	require.Equal(t, http.StatusBadRequest, send(router, http.MethodPost, "/orders", `{"name":`).Code)
	require.Equal(t, http.StatusUnprocessableEntity, send(router, http.MethodPost, "/orders", `{"name":""}`).Code)
	require.Equal(t, http.StatusNotFound, send(router, http.MethodPost, "/lines/3b241101-e2bb-4255-8caf-4136c566a962/commission-status/toggle", "").Code)

	rec := httptest.NewRecorder()
	order.NewHandler(order.HandlerConfig{}).Get(rec, httptest.NewRequest(http.MethodGet, "/orders/x", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
