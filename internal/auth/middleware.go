package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/noah-isme/sales-commission/internal/common"
)

var errNoToken = errors.New("auth: token missing")

// TokenParser is the part of Service the middleware depends on.
type TokenParser interface {
	ParseAccessToken(token string) (Claims, error)
}

// Middleware wires authentication context into HTTP handlers.
type Middleware struct {
	Service TokenParser
}

// RequireAuth enforces that a valid bearer token is present before executing
// the next handler. The subject and roles are attached to the request context.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := m.authenticateRequest(r)
		if err != nil {
			var appErr *common.AppError
			if errors.As(err, &appErr) {
				common.WriteError(w, appErr)
				return
			}
			common.JSONError(w, http.StatusUnauthorized, common.CodeUnauthorized, "missing or invalid token", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects callers that do not hold role. It must run after RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := common.Subject(r.Context()); !ok {
				common.JSONError(w, http.StatusUnauthorized, common.CodeUnauthorized, "missing or invalid token", nil)
				return
			}
			if !common.HasRole(r.Context(), role) {
				common.JSONError(w, http.StatusForbidden, common.CodeForbidden, "role "+role+" required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m Middleware) authenticateRequest(r *http.Request) (context.Context, error) {
	if m.Service == nil {
		return r.Context(), errors.New("auth: service not configured")
	}
	token := bearerToken(r)
	if token == "" {
		return r.Context(), errNoToken
	}
	claims, err := m.Service.ParseAccessToken(token)
	if err != nil {
		return r.Context(), err
	}
	ctx := common.WithSubject(r.Context(), claims.Subject)
	return common.WithRoles(ctx, claims.Roles), nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
