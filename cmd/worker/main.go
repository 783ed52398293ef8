package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/app"
	"github.com/noah-isme/sales-commission/internal/config"
	"github.com/noah-isme/sales-commission/internal/factor"
	"github.com/noah-isme/sales-commission/internal/obs"
	"github.com/noah-isme/sales-commission/internal/order"
	"github.com/noah-isme/sales-commission/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("component", "worker").Logger()
	obs.MustRegisterDomainMetrics(envOrDefault("OBS_METRICS_NAMESPACE", "commission"), nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	deps, err := app.Open(startCtx, cfg, app.Options{ApplicationName: "sales-commission-worker"}, logger)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("open dependencies")
	}
	defer deps.Close(logger)

	// The worker only reads the factor table; writes and their scheduling live in the api.
	factorService := factor.NewService(factor.ServiceConfig{
		Queries: deps.Queries,
		Cache:   factor.NewTableCache(deps.Redis, cfg.FactorCacheTTL),
		Logger:  logger,
	})
	orderService := order.NewService(order.ServiceConfig{
		Store:   order.NewPgStore(deps.DB),
		Factors: factorService,
		Logger:  logger,
	})

	srv := asynq.NewServer(deps.TaskRedis, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues:      map[string]int{queue.DefaultQueue: 1},
		Logger:      asynqLogger{logger: logger},
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			logger.Error().Err(err).Str("task", task.Type()).Msg("task failed")
		}),
		ShutdownTimeout: 30 * time.Second,
	})
	mux := queue.NewServeMux(queue.RecomputeHandler{Orders: orderService, Logger: logger})

	logger.Info().Int("concurrency", cfg.WorkerConcurrency).Msg("worker starting")
	if err := srv.Start(mux); err != nil {
		logger.Fatal().Err(err).Msg("start worker")
	}
	<-ctx.Done()
	srv.Shutdown()
	logger.Info().Msg("worker shutdown complete")
}

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct {
	logger zerolog.Logger
}

func (l asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(joinArgs(args)) }
func (l asynqLogger) Info(args ...any)  { l.logger.Info().Msg(joinArgs(args)) }
func (l asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(joinArgs(args)) }
func (l asynqLogger) Error(args ...any) { l.logger.Error().Msg(joinArgs(args)) }
func (l asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(joinArgs(args)) }

func joinArgs(args []any) string {
	return strings.TrimSpace(fmt.Sprint(args...))
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
