package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/config"
	dbgen "github.com/noah-isme/sales-commission/internal/db/gen"
	"github.com/noah-isme/sales-commission/internal/obs"
)

// Dependencies holds the connections shared by the api and worker binaries.
type Dependencies struct {
	DB      *pgxpool.Pool
	Queries *dbgen.Queries
	Redis   *redis.Client
	// TaskRedis points asynq at the same Redis as Redis.
	TaskRedis asynq.RedisConnOpt
}

// Options tunes Open.
type Options struct {
	ApplicationName string
	RedisMetrics    bool
}

// Open connects to PostgreSQL and Redis and verifies both with a ping.
func Open(ctx context.Context, cfg *config.Config, opts Options, logger zerolog.Logger) (*Dependencies, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	if opts.ApplicationName != "" {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = opts.ApplicationName
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if opts.RedisMetrics {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Dependencies{
		DB:        pool,
		Queries:   dbgen.New(pool),
		Redis:     redisClient,
		TaskRedis: TaskRedisOpt(redisOpts),
	}, nil
}

// TaskRedisOpt converts go-redis options into the asynq connection option.
func TaskRedisOpt(o *redis.Options) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Network:   o.Network,
		Addr:      o.Addr,
		Username:  o.Username,
		Password:  o.Password,
		DB:        o.DB,
		TLSConfig: o.TLSConfig,
	}
}

// Close releases every connection.
func (d *Dependencies) Close(logger zerolog.Logger) {
	if d == nil {
		return
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}

// PingDB implements health.Checker.
func (d *Dependencies) PingDB(ctx context.Context, timeout time.Duration) error {
	if d == nil || d.DB == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return d.DB.Ping(ctx)
}

// PingRedis implements health.Checker.
func (d *Dependencies) PingRedis(ctx context.Context, timeout time.Duration) error {
	if d == nil || d.Redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return d.Redis.Ping(ctx).Err()
}
