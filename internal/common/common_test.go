package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestFromDB(t *testing.T) {
	require.NoError(t, FromDB(nil, "order"))

	err := FromDB(fmt.Errorf("get: %w", pgx.ErrNoRows), "order")
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	require.Equal(t, "order not found", appErr.Message)

	err = FromDB(&pgconn.PgError{Code: "23505"}, "factor")
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusConflict, appErr.HTTPStatus)

	plain := errors.New("boom")
	require.Same(t, plain, FromDB(plain, "order"))
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, Validation("bad factor", nil).WithDetails(map[string]string{"field": "commission_factor"}))
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var body struct {
		Error ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, CodeValidation, body.Error.Code)
	require.Equal(t, "bad factor", body.Error.Message)

	rr = httptest.NewRecorder()
	WriteError(rr, errors.New("secret internals"))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotContains(t, rr.Body.String(), "secret")
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	err := DecodeJSON(req, &dst)
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	require.Equal(t, "x", dst.Name)
}

func TestRolesContext(t *testing.T) {
	ctx := WithRoles(WithSubject(context.Background(), "admin"), []string{"commission_admin"})
	sub, ok := Subject(ctx)
	require.True(t, ok)
	require.Equal(t, "admin", sub)
	require.True(t, HasRole(ctx, "commission_admin"))
	require.False(t, HasRole(context.Background(), "commission_admin"))
}

func TestIdempotencyMiddleware(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	calls := 0
	h := Idem{R: client, TTL: time.Minute}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/api/v1/orders/3/vm" && calls == 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("Idempotency-Key", "abc")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}
	require.Equal(t, http.StatusCreated, send("/api/v1/orders/1/vm"))
	require.Equal(t, http.StatusConflict, send("/api/v1/orders/1/vm"))
	require.Equal(t, http.StatusCreated, send("/api/v1/orders/2/vm"))
	require.Equal(t, 2, calls)

	// a failed attempt releases the key
	require.Equal(t, http.StatusBadGateway, send("/api/v1/orders/3/vm"))
	require.Equal(t, http.StatusCreated, send("/api/v1/orders/3/vm"))
	require.Equal(t, http.StatusConflict, send("/api/v1/orders/3/vm"))
	require.Equal(t, 4, calls)
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=1000", nil)
	page, per := ParsePagination(req, 50, 200)
	require.Equal(t, 3, page)
	require.Equal(t, 200, per)
	require.Equal(t, 400, Offset(page, per))

	req = httptest.NewRequest(http.MethodGet, "/?page=-2&per_page=20", nil)
	page, per = ParsePagination(req, 50, 200)
	require.Equal(t, 1, page)
	require.Equal(t, 20, per)
	require.Equal(t, 0, Offset(page, per))

	p := NewPagination(2, 20, 41)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 0, NewPagination(1, 0, 10).TotalPages)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	require.Equal(t, "10.0.0.7", ClientIP(req))

	req.RemoteAddr = "not-an-address"
	require.Equal(t, "203.0.113.9", ClientIP(req))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "2001:db8::1")
	require.Equal(t, "2001:db8::1", ClientIP(req))

	req.Header.Del("X-Real-IP")
	require.Equal(t, "not-an-address", ClientIP(req))
}

func TestIDConversions(t *testing.T) {
	id := uuid.New()
	require.Equal(t, id, FromPgUUID(PgUUID(id)))
	require.False(t, PgUUID(uuid.Nil).Valid)

	parsed, err := ParseID(" "+id.String()+" ", "order")
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = ParseID("nope", "order")
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "invalid order id", appErr.Message)
}
