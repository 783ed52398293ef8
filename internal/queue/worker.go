package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/obs"
	"github.com/noah-isme/sales-commission/internal/order"
)

// Recomputer recomputes every open order against the active factor table.
type Recomputer interface {
	RecomputeOpenOrders(ctx context.Context) (order.RecomputeSummary, error)
}

// RecomputeHandler processes TypeRecomputeOpenOrders tasks.
type RecomputeHandler struct {
	Orders Recomputer
	Logger zerolog.Logger
}

// ProcessTask implements asynq.Handler.
func (h RecomputeHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := decodeRecompute(t)
	if err != nil {
		obs.IncRecomputeTask(t.Type(), "bad_payload")
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if h.Orders == nil {
		return errors.New("queue: recompute service not configured")
	}
	logger := obs.LoggerWithTrace(ctx, h.Logger)
	summary, err := h.Orders.RecomputeOpenOrders(ctx)
	if err != nil {
		obs.IncRecomputeTask(t.Type(), "error")
		logger.Error().Err(err).
			Str("reason", payload.Reason).
			Int("orders", summary.Orders).
			Int("failed", summary.Failed).
			Msg("recompute open orders failed")
		return err
	}
	obs.IncRecomputeTask(t.Type(), "success")
	logger.Info().
		Str("reason", payload.Reason).
		Int("orders", summary.Orders).
		Msg("open orders recomputed")
	return nil
}

// NewServeMux routes every commission task type to its handler.
func NewServeMux(recompute RecomputeHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeRecomputeOpenOrders, recompute)
	return mux
}
