package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sales-commission/internal/common"
)

var testParams = &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	hash, err := argon2id.CreateHash("s3cret", testParams)
	require.NoError(t, err)
	svc, err := NewService(Config{
		Accounts: []Account{
			{Username: "admin", PasswordHash: hash, Roles: []string{RoleAdmin, RoleSales}},
			{Username: "seller", PasswordHash: hash, Roles: []string{RoleSales}},
		},
		Secret:         "test-secret",
		AccessTokenTTL: 10 * time.Minute,
	})
	require.NoError(t, err)
	svc.WithNow(func() time.Time { return now })
	return svc
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService(Config{})
	require.Error(t, err)
}

func TestLoginIssuesTokenWithRoles(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	res, err := svc.Login(context.Background(), "Admin", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "Bearer", res.TokenType)
	require.Equal(t, now.Add(10*time.Minute), res.ExpiresAt)

	claims, err := svc.ParseAccessToken(res.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.ElementsMatch(t, []string{RoleAdmin, RoleSales}, claims.Roles)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t, time.Now())

	for _, tc := range []struct{ user, pass string }{
		{"admin", "wrong"},
		{"nobody", "s3cret"},
		{"admin", ""},
	} {
		_, err := svc.Login(context.Background(), tc.user, tc.pass)
		var appErr *common.AppError
		require.True(t, errors.As(err, &appErr), "user=%s", tc.user)
		require.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, issued)
	token, _, err := svc.IssueToken("admin", []string{RoleAdmin})
	require.NoError(t, err)

	svc.WithNow(func() time.Time { return issued.Add(time.Hour) })
	_, err = svc.ParseAccessToken(token)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsForeignSignatures(t *testing.T) {
	svc := newTestService(t, time.Now())

	tok, err := jwt.NewBuilder().Subject("admin").Issuer("sales-commission").
		Audience([]string{"sales-commission-api"}).Expiration(time.Now().Add(time.Minute)).Build()
	require.NoError(t, err)

	otherKey, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte("other-secret")))
	require.NoError(t, err)
	_, err = svc.ParseAccessToken(string(otherKey))
	require.Error(t, err)

	otherAlg, err := jwt.Sign(tok, jwt.WithKey(jwa.HS512, []byte("test-secret")))
	require.NoError(t, err)
	_, err = svc.ParseAccessToken(string(otherAlg))
	require.Error(t, err)

	_, err = svc.ParseAccessToken("not-a-token")
	require.Error(t, err)
}

func TestTokenValidator(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	v := TokenValidator{Issuer: "iss", Audience: "aud", ClockSkew: 30 * time.Second, Algorithm: jwa.HS256}

	build := func(sub, iss string, exp time.Time) jwt.Token {
		b := jwt.NewBuilder().Issuer(iss).Audience([]string{"aud"}).Expiration(exp)
		if sub != "" {
			b = b.Subject(sub)
		}
		tok, err := b.Build()
		require.NoError(t, err)
		return tok
	}

	require.NoError(t, v.Validate(build("u", "iss", now.Add(time.Minute)), jwa.HS256, now))
	require.NoError(t, v.Validate(build("u", "iss", now.Add(-10*time.Second)), jwa.HS256, now), "within skew")
	require.Error(t, v.Validate(build("u", "iss", now.Add(-time.Minute)), jwa.HS256, now))
	require.Error(t, v.Validate(build("u", "other", now.Add(time.Minute)), jwa.HS256, now))
	require.Error(t, v.Validate(build("", "iss", now.Add(time.Minute)), jwa.HS256, now))
	require.Error(t, v.Validate(build("u", "iss", now.Add(time.Minute)), jwa.RS256, now))
	require.Error(t, v.Validate(nil, jwa.HS256, now))
}
