package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string
	MigrateOnStart     bool

	JWTSecret         string
	JWTIssuer         string
	AccessTokenTTL    time.Duration
	AdminUsername     string
	AdminPasswordHash string
	SalesUsername     string
	SalesPasswordHash string

	FactorCacheTTL        time.Duration
	FactorLockTTL         time.Duration
	LockRetryBackoff      time.Duration
	RecomputeUniqueWindow time.Duration
	RecomputeMaxRetry     int
	WorkerConcurrency     int
	IdempotencyTTL        time.Duration

	RateLimitWindow time.Duration
	RateLimitMax    int

	AuditEnabled bool
	MaxBodyBytes int64
	HSTSMaxAge   int

	ReportDefaultLimit int
	ReportMaxLimit     int

	// MenuCompanyName is the company allowed to see cloud menus.
	MenuCompanyName string
	MenuHiddenIDs   []int
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	hidden, err := parseIntList(k.String("MENU_HIDDEN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("MENU_HIDDEN_IDS: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		MigrateOnStart:     parseBool(k.String("MIGRATE_ON_START")),

		JWTSecret:         k.String("JWT_SECRET"),
		JWTIssuer:         valueOrDefault(k.String("JWT_ISSUER"), "sales-commission"),
		AccessTokenTTL:    parseDuration(k.String("ACCESS_TOKEN_TTL"), "15m"),
		AdminUsername:     valueOrDefault(k.String("ADMIN_USERNAME"), "admin"),
		AdminPasswordHash: strings.TrimSpace(k.String("ADMIN_PASSWORD_HASH")),
		SalesUsername:     strings.TrimSpace(k.String("SALES_USERNAME")),
		SalesPasswordHash: strings.TrimSpace(k.String("SALES_PASSWORD_HASH")),

		FactorCacheTTL:        parseDuration(k.String("FACTOR_CACHE_TTL"), "5m"),
		FactorLockTTL:         parseDuration(k.String("FACTOR_LOCK_TTL"), "10s"),
		LockRetryBackoff:      parseDuration(k.String("LOCK_RETRY_BACKOFF"), "50ms"),
		RecomputeUniqueWindow: parseDuration(k.String("RECOMPUTE_UNIQUE_WINDOW"), "30s"),
		RecomputeMaxRetry:     parseInt(k.String("RECOMPUTE_MAX_RETRY"), 5),
		WorkerConcurrency:     parseInt(k.String("WORKER_CONCURRENCY"), 5),
		IdempotencyTTL:        parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),

		RateLimitWindow: parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:    parseInt(k.String("RATE_LIMIT_MAX"), 60),

		AuditEnabled: parseBoolDefault(k.String("AUDIT_ENABLED"), true),
		MaxBodyBytes: int64(parseInt(k.String("MAX_BODY_BYTES"), 1<<20)),
		HSTSMaxAge:   parseInt(k.String("HSTS_MAX_AGE"), 0),

		ReportDefaultLimit: parseInt(k.String("REPORT_DEFAULT_LIMIT"), 50),
		ReportMaxLimit:     parseInt(k.String("REPORT_MAX_LIMIT"), 500),

		MenuCompanyName: valueOrDefault(k.String("CLOUD_COMPANY_NAME"), "Nubi2go"),
		MenuHiddenIDs:   hidden,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.ReportDefaultLimit > cfg.ReportMaxLimit {
		cfg.ReportDefaultLimit = cfg.ReportMaxLimit
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseIntList(value string) ([]int, error) {
	parts := splitAndTrim(value)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBoolDefault(value string, fallback bool) bool {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return parseBool(value)
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
