package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/app"
	"github.com/noah-isme/sales-commission/internal/audit"
	"github.com/noah-isme/sales-commission/internal/auth"
	"github.com/noah-isme/sales-commission/internal/common"
	"github.com/noah-isme/sales-commission/internal/config"
	"github.com/noah-isme/sales-commission/internal/db"
	"github.com/noah-isme/sales-commission/internal/factor"
	"github.com/noah-isme/sales-commission/internal/health"
	"github.com/noah-isme/sales-commission/internal/lock"
	"github.com/noah-isme/sales-commission/internal/menu"
	"github.com/noah-isme/sales-commission/internal/obs"
	"github.com/noah-isme/sales-commission/internal/order"
	"github.com/noah-isme/sales-commission/internal/queue"
	"github.com/noah-isme/sales-commission/internal/ratelimit"
	"github.com/noah-isme/sales-commission/internal/report"
	"github.com/noah-isme/sales-commission/internal/security"
	"github.com/noah-isme/sales-commission/internal/viewpatch"
	"github.com/noah-isme/sales-commission/internal/vm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "commission")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "sales-commission-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0),
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	if cfg.MigrateOnStart {
		if err := db.Up(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
		logger.Info().Msg("migrations applied")
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	deps, err := app.Open(startCtx, cfg, app.Options{ApplicationName: "sales-commission-api", RedisMetrics: metricsEnabled}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open dependencies")
	}
	defer deps.Close(logger)

	taskClient := asynq.NewClient(deps.TaskRedis)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()
	taskInspector := asynq.NewInspector(deps.TaskRedis)
	scheduler := queue.NewScheduler(queue.SchedulerConfig{
		Client:       taskClient,
		UniqueWindow: cfg.RecomputeUniqueWindow,
		MaxRetry:     cfg.RecomputeMaxRetry,
		Logger:       logger,
	})

	factorService := factor.NewService(factor.ServiceConfig{
		Queries:   deps.Queries,
		Cache:     factor.NewTableCache(deps.Redis, cfg.FactorCacheTTL),
		Locker:    lock.Locker{R: deps.Redis, RetryBackoff: cfg.LockRetryBackoff, MaxWait: cfg.FactorLockTTL},
		LockTTL:   cfg.FactorLockTTL,
		Scheduler: scheduler,
		Logger:    logger,
	})
	orderService := order.NewService(order.ServiceConfig{
		Store:   order.NewPgStore(deps.DB),
		Factors: factorService,
		Logger:  logger,
	})
	vmService := vm.NewService(orderService, logger)
	reportService := report.NewService(report.ServiceConfig{
		Queries:      deps.Queries,
		DefaultLimit: cfg.ReportDefaultLimit,
		MaxLimit:     cfg.ReportMaxLimit,
	})

	authService, err := auth.NewService(auth.Config{
		Accounts:       accounts(cfg, logger),
		Secret:         cfg.JWTSecret,
		AccessTokenTTL: cfg.AccessTokenTTL,
		Issuer:         cfg.JWTIssuer,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise auth service")
	}
	authHandler := &auth.Handler{Service: authService}
	authMiddleware := auth.Middleware{Service: authService}

	writeLimiter, err := ratelimit.NewRedisLimiter(deps.Redis, "commission:ratelimit", cfg.RateLimitWindow, cfg.RateLimitMax)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise rate limiter")
	}
	onLimitErr := func(err error) { logger.Warn().Err(err).Msg("rate limiter store unavailable") }
	limitBySubject := ratelimit.Handler{Limiter: writeLimiter, Key: ratelimit.BySubject, OnError: onLimitErr}
	limitByIP := ratelimit.Handler{Limiter: writeLimiter, Key: ratelimit.ByClientIP, OnError: onLimitErr}
	auditService := audit.Service{Store: deps.Queries, Enabled: cfg.AuditEnabled}
	auditRecorder := audit.Recorder{
		Service: auditService,
		OnError: func(err error) { logger.Error().Err(err).Msg("record audit log") },
	}
	adminOnly := func(next http.Handler) http.Handler {
		return auth.RequireRole(auth.RoleAdmin)(limitBySubject.Middleware(auditRecorder.Middleware(next)))
	}

	idem := common.Idem{R: deps.Redis, TTL: cfg.IdempotencyTTL}

	factorHandler := factor.NewHandler(factor.HandlerConfig{Service: factorService, Logger: logger})
	orderHandler := order.NewHandler(order.HandlerConfig{Service: orderService, Logger: logger})
	vmHandler := vm.NewHandler(vmService, logger)
	reportHandler := report.NewHandler(report.HandlerConfig{
		Service:      reportService,
		Logger:       logger,
		DefaultLimit: cfg.ReportDefaultLimit,
		MaxLimit:     cfg.ReportMaxLimit,
	})
	menuHandler := &menu.Handler{Filter: menu.NewFilter(cfg.MenuCompanyName, cfg.MenuHiddenIDs)}
	queueAdmin := &queue.AdminHandler{Inspector: taskInspector, Scheduler: scheduler, Logger: logger}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.SpanRoute)
	r.Use(security.Headers{HSTSMaxAge: cfg.HSTSMaxAge}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.MaxBodyBytes}.Middleware)
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Content-Disposition", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	if envBool("OBS_ENABLE_PPROF", false) {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker:      deps,
		Factors:      factorService,
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.With(limitByIP.Middleware).Post("/auth/token", authHandler.Token)

		v.Group(func(p chi.Router) {
			p.Use(authMiddleware.RequireAuth)
			p.Use(idem.Middleware)

			factorHandler.Routes(p, adminOnly)
			orderHandler.Routes(p, adminOnly)
			vmHandler.Routes(p)
			reportHandler.Routes(p)
			p.Post("/menus/filter", menuHandler.FilterMenus)
			p.Post("/views/user-groups/patch", viewpatch.Handle)

			p.Group(func(a chi.Router) {
				a.Use(adminOnly)
				queueAdmin.Routes(a)
				a.Get("/admin/audit-logs", audit.Handler{Service: auditService}.List)
			})
		})
	})

	var handler http.Handler = r
	if tracingEnabled {
		handler = obs.Tracing(r, "sales-commission-api")
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	case <-ctx.Done():
		health.SetReady(false)
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), envDurationMillis("SHUTDOWN_TIMEOUT_MS", 15000))
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	}
}

func accounts(cfg *config.Config, logger zerolog.Logger) []auth.Account {
	var out []auth.Account
	if cfg.AdminPasswordHash != "" {
		out = append(out, auth.Account{
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
			Roles:        []string{auth.RoleAdmin, auth.RoleSales},
		})
	} else {
		logger.Warn().Msg("ADMIN_PASSWORD_HASH not set; admin login disabled")
	}
	if cfg.SalesUsername != "" && cfg.SalesPasswordHash != "" {
		out = append(out, auth.Account{
			Username:     cfg.SalesUsername,
			PasswordHash: cfg.SalesPasswordHash,
			Roles:        []string{auth.RoleSales},
		})
	}
	return out
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return time.Duration(parsed) * time.Millisecond
		}
	}
	return time.Duration(fallback) * time.Millisecond
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		mux.Handle("/"+name, pprof.Handler(name))
	}
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
