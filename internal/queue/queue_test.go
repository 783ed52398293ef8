package queue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sales-commission/internal/order"
)

type stubEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (s *stubEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.tasks = append(s.tasks, task)
	s.opts = append(s.opts, opts)
	return &asynq.TaskInfo{ID: "t1", Queue: DefaultQueue, Type: task.Type()}, nil
}

type stubRecomputer struct {
	calls   int
	summary order.RecomputeSummary
	err     error
}

func (s *stubRecomputer) RecomputeOpenOrders(context.Context) (order.RecomputeSummary, error) {
	s.calls++
	return s.summary, s.err
}

func TestScheduleRecomputeEnqueuesUniqueTask(t *testing.T) {
	enq := &stubEnqueuer{}
	s := NewScheduler(SchedulerConfig{Client: enq, UniqueWindow: time.Minute, Logger: zerolog.Nop()})

	require.NoError(t, s.ScheduleRecompute(context.Background()))
	require.Len(t, enq.tasks, 1)
	require.Equal(t, TypeRecomputeOpenOrders, enq.tasks[0].Type())
	require.Len(t, enq.opts[0], 3)

	var payload RecomputePayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &payload))
	require.Equal(t, ReasonFactorTableChanged, payload.Reason)

	require.NoError(t, s.ScheduleRecompute(context.Background()))
	require.Equal(t, enq.tasks[0].Payload(), enq.tasks[1].Payload(), "repeat requests share one uniqueness key")
}

func TestScheduleRecomputeCollapsesInsideUniqueWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	opt := asynq.RedisClientOpt{Addr: mr.Addr()}
	client := asynq.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })
	inspector := asynq.NewInspector(opt)
	t.Cleanup(func() { _ = inspector.Close() })

	s := NewScheduler(SchedulerConfig{Client: client, UniqueWindow: time.Minute, Logger: zerolog.Nop()})
	for i := 0; i < 3; i++ {
		require.NoError(t, s.ScheduleRecompute(context.Background()))
	}
	pending, err := inspector.ListPendingTasks(DefaultQueue)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, TypeRecomputeOpenOrders, pending[0].Type)
}

func TestScheduleRecomputeErrors(t *testing.T) {
	s := NewScheduler(SchedulerConfig{Client: &stubEnqueuer{err: asynq.ErrDuplicateTask}})
	require.NoError(t, s.ScheduleRecompute(context.Background()))

	s = NewScheduler(SchedulerConfig{Client: &stubEnqueuer{err: errors.New("redis down")}})
	require.EqualError(t, s.ScheduleRecompute(context.Background()), "redis down")

	var nilScheduler *Scheduler
	require.Error(t, nilScheduler.ScheduleRecompute(context.Background()))
}

func TestRecomputeHandler(t *testing.T) {
	task, err := NewRecomputeTask("manual")
	require.NoError(t, err)

	orders := &stubRecomputer{summary: order.RecomputeSummary{Orders: 3}}
	h := RecomputeHandler{Orders: orders, Logger: zerolog.Nop()}
	require.NoError(t, h.ProcessTask(context.Background(), task))
	require.Equal(t, 1, orders.calls)

	orders.err = errors.New("1 of 3 orders failed")
	require.Error(t, h.ProcessTask(context.Background(), task))

	bad := asynq.NewTask(TypeRecomputeOpenOrders, []byte("{"))
	err = h.ProcessTask(context.Background(), bad)
	require.ErrorIs(t, err, asynq.SkipRetry)
	require.Equal(t, 2, orders.calls)
}

func TestServeMuxRoutesRecompute(t *testing.T) {
	orders := &stubRecomputer{}
	mux := NewServeMux(RecomputeHandler{Orders: orders, Logger: zerolog.Nop()})
	require.NoError(t, mux.ProcessTask(context.Background(), asynq.NewTask(TypeRecomputeOpenOrders, nil)))
	require.Equal(t, 1, orders.calls)
	require.Error(t, mux.ProcessTask(context.Background(), asynq.NewTask("unknown", nil)))
}

type stubInspector struct {
	info     *asynq.QueueInfo
	archived []*asynq.TaskInfo
	err      error
	ran      int
}

func (s *stubInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) {
	return s.info, s.err
}

func (s *stubInspector) ListArchivedTasks(string, ...asynq.ListOption) ([]*asynq.TaskInfo, error) {
	return s.archived, s.err
}

func (s *stubInspector) RunAllArchivedTasks(string) (int, error) {
	s.ran++
	return len(s.archived), s.err
}

func TestAdminHandler(t *testing.T) {
	failedAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	insp := &stubInspector{
		info: &asynq.QueueInfo{Queue: DefaultQueue, Size: 2, Pending: 1, Archived: 1, Latency: 1500 * time.Millisecond},
		archived: []*asynq.TaskInfo{{
			ID: "a1", Type: TypeRecomputeOpenOrders, Retried: 5, MaxRetry: 5, LastErr: "boom", LastFailedAt: failedAt,
		}},
	}
	enq := &stubEnqueuer{}
	h := &AdminHandler{Inspector: insp, Scheduler: NewScheduler(SchedulerConfig{Client: enq}), Logger: zerolog.Nop()}
	r := chi.NewRouter()
	h.Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/queue", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"latency_ms":1500`)
	require.Contains(t, rec.Body.String(), `"archived":1`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/queue/archived", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"last_error":"boom"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/queue/archived/run", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"requeued":1`)
	require.Equal(t, 1, insp.ran)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/queue/recompute", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, enq.tasks, 1)
}

func TestAdminHandlerMissingQueue(t *testing.T) {
	h := &AdminHandler{Inspector: &stubInspector{err: asynq.ErrQueueNotFound}, Logger: zerolog.Nop()}
	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/admin/queue", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"queue":"commission"`)

	rec = httptest.NewRecorder()
	(&AdminHandler{}).Stats(rec, httptest.NewRequest(http.MethodGet, "/admin/queue", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
