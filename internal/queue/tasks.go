package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeRecomputeOpenOrders recomputes commission figures of every draft or sent order.
const TypeRecomputeOpenOrders = "commission:recompute_open_orders"

// DefaultQueue is the asynq queue commission tasks are published to.
const DefaultQueue = "commission"

// RecomputePayload is carried by a recompute task. asynq derives the
// uniqueness key from queue, type and payload, so the payload holds nothing
// that differs between two requests for the same reason.
type RecomputePayload struct {
	Reason string `json:"reason"`
}

// NewRecomputeTask builds a recompute task.
func NewRecomputeTask(reason string) (*asynq.Task, error) {
	raw, err := json.Marshal(RecomputePayload{Reason: reason})
	if err != nil {
		return nil, fmt.Errorf("encode recompute payload: %w", err)
	}
	return asynq.NewTask(TypeRecomputeOpenOrders, raw), nil
}

func decodeRecompute(t *asynq.Task) (RecomputePayload, error) {
	var p RecomputePayload
	if len(t.Payload()) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("decode recompute payload: %w", err)
	}
	return p, nil
}
