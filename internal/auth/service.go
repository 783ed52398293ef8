package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/noah-isme/sales-commission/internal/common"
)

// Roles understood by the API.
const (
	RoleAdmin = "commission_admin"
	RoleSales = "sales"
)

const defaultAccessTTL = 15 * time.Minute

// Account is a configured principal allowed to request tokens.
type Account struct {
	Username     string
	PasswordHash string
	Roles        []string
}

// Config configures the auth service.
type Config struct {
	Accounts       []Account
	Secret         string
	AccessTokenTTL time.Duration
	Issuer         string
	Audience       string
	ClockSkew      time.Duration
}

// TokenResult is returned by a successful login.
type TokenResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Roles       []string  `json:"roles"`
}

// Service issues and verifies HS256 bearer tokens for configured accounts.
type Service struct {
	accounts  map[string]Account
	secret    []byte
	accessTTL time.Duration
	issuer    string
	audience  string
	clockSkew time.Duration
	signer    jwa.SignatureAlgorithm
	validator TokenValidator
	now       func() time.Time
}

var errInvalidCredentials = common.NewAppError(common.CodeUnauthorized, "invalid credentials", http.StatusUnauthorized, nil)

// NewService constructs a Service instance with sane defaults.
func NewService(cfg Config) (*Service, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	accounts := make(map[string]Account, len(cfg.Accounts))
	for _, acc := range cfg.Accounts {
		name := strings.TrimSpace(acc.Username)
		if name == "" || strings.TrimSpace(acc.PasswordHash) == "" {
			continue
		}
		acc.Username = name
		accounts[strings.ToLower(name)] = acc
	}
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = "sales-commission"
	}
	audience := strings.TrimSpace(cfg.Audience)
	if audience == "" {
		audience = "sales-commission-api"
	}
	skew := cfg.ClockSkew
	if skew < 0 {
		skew = 0
	}
	return &Service{
		accounts:  accounts,
		secret:    []byte(secret),
		accessTTL: ttl,
		issuer:    issuer,
		audience:  audience,
		clockSkew: skew,
		signer:    jwa.HS256,
		validator: TokenValidator{Issuer: issuer, Audience: audience, ClockSkew: skew, Algorithm: jwa.HS256},
		now:       time.Now,
	}, nil
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// HashPassword produces an argon2id hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// Login verifies the credentials of a configured account and issues a token.
func (s *Service) Login(_ context.Context, username, password string) (TokenResult, error) {
	acc, ok := s.accounts[strings.ToLower(strings.TrimSpace(username))]
	if !ok || password == "" {
		return TokenResult{}, errInvalidCredentials
	}
	match, err := argon2id.ComparePasswordAndHash(password, acc.PasswordHash)
	if err != nil {
		return TokenResult{}, fmt.Errorf("compare password: %w", err)
	}
	if !match {
		return TokenResult{}, errInvalidCredentials
	}
	token, expiresAt, err := s.IssueToken(acc.Username, acc.Roles)
	if err != nil {
		return TokenResult{}, err
	}
	return TokenResult{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt, Roles: acc.Roles}, nil
}

// IssueToken signs an access token for subject with the given roles.
func (s *Service) IssueToken(subject string, roles []string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)
	token, err := jwt.NewBuilder().
		Subject(subject).
		Issuer(s.issuer).
		Audience([]string{s.audience}).
		IssuedAt(now).
		NotBefore(now.Add(-s.clockSkew)).
		Expiration(expiresAt).
		Claim(rolesClaim, roles).
		Build()
	if err != nil {
		return "", time.Time{}, err
	}
	signed, err := jwt.Sign(token, jwt.WithKey(s.signer, s.secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return string(signed), expiresAt, nil
}

// ParseAccessToken validates an access token and returns its claims.
func (s *Service) ParseAccessToken(token string) (Claims, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return Claims{}, common.NewAppError(common.CodeUnauthorized, "missing token", http.StatusUnauthorized, nil)
	}
	algorithm, err := tokenAlgorithm(trimmed)
	if err != nil {
		return Claims{}, common.NewAppError(common.CodeUnauthorized, "invalid token", http.StatusUnauthorized, err)
	}
	if algorithm != s.validator.Algorithm {
		return Claims{}, common.NewAppError(common.CodeUnauthorized, "invalid token", http.StatusUnauthorized, fmt.Errorf("unexpected token algorithm %s", algorithm))
	}
	parsed, err := jwt.ParseString(trimmed, jwt.WithKey(algorithm, s.secret), jwt.WithValidate(false))
	if err != nil {
		return Claims{}, common.NewAppError(common.CodeUnauthorized, "invalid token", http.StatusUnauthorized, err)
	}
	if err := s.validator.Validate(parsed, algorithm, s.now()); err != nil {
		return Claims{}, common.NewAppError(common.CodeUnauthorized, "invalid token", http.StatusUnauthorized, err)
	}
	return claimsFromToken(parsed), nil
}
