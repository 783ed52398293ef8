package queue

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/obs"
)

// ReasonFactorTableChanged tags recomputes triggered by a factor write.
const ReasonFactorTableChanged = "factor_table_changed"

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler publishes recompute tasks. A request made while an identical task
// is still queued inside the unique window is dropped as a duplicate.
type Scheduler struct {
	client       enqueuer
	queue        string
	uniqueWindow time.Duration
	maxRetry     int
	logger       zerolog.Logger
}

// SchedulerConfig groups Scheduler dependencies.
type SchedulerConfig struct {
	Client       enqueuer
	Queue        string
	UniqueWindow time.Duration
	MaxRetry     int
	Logger       zerolog.Logger
}

// NewScheduler constructs a Scheduler.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	s := &Scheduler{
		client:       cfg.Client,
		queue:        cfg.Queue,
		uniqueWindow: cfg.UniqueWindow,
		maxRetry:     cfg.MaxRetry,
		logger:       cfg.Logger,
	}
	if s.queue == "" {
		s.queue = DefaultQueue
	}
	if s.uniqueWindow <= 0 {
		s.uniqueWindow = 30 * time.Second
	}
	if s.maxRetry <= 0 {
		s.maxRetry = 5
	}
	return s
}

// ScheduleRecompute enqueues a recompute of open orders.
func (s *Scheduler) ScheduleRecompute(ctx context.Context) error {
	if s == nil || s.client == nil {
		return errors.New("queue: client not configured")
	}
	task, err := NewRecomputeTask(ReasonFactorTableChanged)
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task,
		asynq.Queue(s.queue),
		asynq.Unique(s.uniqueWindow),
		asynq.MaxRetry(s.maxRetry),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		obs.IncRecomputeTask(TypeRecomputeOpenOrders, "deduplicated")
		return nil
	}
	if err != nil {
		obs.IncRecomputeTask(TypeRecomputeOpenOrders, "enqueue_error")
		return err
	}
	obs.IncRecomputeTask(TypeRecomputeOpenOrders, "enqueued")
	s.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("recompute scheduled")
	return nil
}
