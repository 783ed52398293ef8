package queue

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/common"
)

// Inspector is the subset of asynq.Inspector used by AdminHandler.
type Inspector interface {
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
	ListArchivedTasks(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)
	RunAllArchivedTasks(queue string) (int, error)
}

// AdminHandler exposes queue state and archived-task replay.
type AdminHandler struct {
	Inspector Inspector
	Scheduler *Scheduler
	Queue     string
	PageSize  int
	Logger    zerolog.Logger
}

type queueStats struct {
	Queue     string `json:"queue"`
	Size      int    `json:"size"`
	Pending   int    `json:"pending"`
	Active    int    `json:"active"`
	Scheduled int    `json:"scheduled"`
	Retry     int    `json:"retry"`
	Archived  int    `json:"archived"`
	Completed int    `json:"completed"`
	Processed int    `json:"processed_today"`
	Failed    int    `json:"failed_today"`
	Paused    bool   `json:"paused"`
	LatencyMS int64  `json:"latency_ms"`
}

type archivedTask struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	Retried      int        `json:"retried"`
	MaxRetry     int        `json:"max_retry"`
	LastError    string     `json:"last_error,omitempty"`
	LastFailedAt *time.Time `json:"last_failed_at,omitempty"`
}

// Routes mounts the queue admin endpoints.
func (h *AdminHandler) Routes(r chi.Router) {
	r.Get("/admin/queue", h.Stats)
	r.Get("/admin/queue/archived", h.ListArchived)
	r.Post("/admin/queue/archived/run", h.RunArchived)
	r.Post("/admin/queue/recompute", h.Recompute)
}

// Stats handles GET /api/v1/admin/queue.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Inspector == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "queue inspector unavailable", nil)
		return
	}
	info, err := h.Inspector.GetQueueInfo(h.queue())
	if errors.Is(err, asynq.ErrQueueNotFound) {
		common.JSON(w, http.StatusOK, map[string]any{"data": queueStats{Queue: h.queue()}})
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": queueStats{
		Queue:     info.Queue,
		Size:      info.Size,
		Pending:   info.Pending,
		Active:    info.Active,
		Scheduled: info.Scheduled,
		Retry:     info.Retry,
		Archived:  info.Archived,
		Completed: info.Completed,
		Processed: info.Processed,
		Failed:    info.Failed,
		Paused:    info.Paused,
		LatencyMS: info.Latency.Milliseconds(),
	}})
}

// ListArchived handles GET /api/v1/admin/queue/archived.
func (h *AdminHandler) ListArchived(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Inspector == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "queue inspector unavailable", nil)
		return
	}
	page, perPage := common.ParsePagination(r, h.pageSize(), 100)
	tasks, err := h.Inspector.ListArchivedTasks(h.queue(), asynq.Page(page), asynq.PageSize(perPage))
	if errors.Is(err, asynq.ErrQueueNotFound) {
		tasks, err = nil, nil
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items := make([]archivedTask, 0, len(tasks))
	for _, t := range tasks {
		item := archivedTask{ID: t.ID, Type: t.Type, Retried: t.Retried, MaxRetry: t.MaxRetry, LastError: t.LastErr}
		if !t.LastFailedAt.IsZero() {
			failedAt := t.LastFailedAt.UTC()
			item.LastFailedAt = &failedAt
		}
		items = append(items, item)
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":     items,
		"page":     page,
		"per_page": perPage,
	})
}

// RunArchived handles POST /api/v1/admin/queue/archived/run.
func (h *AdminHandler) RunArchived(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Inspector == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "queue inspector unavailable", nil)
		return
	}
	n, err := h.Inspector.RunAllArchivedTasks(h.queue())
	if errors.Is(err, asynq.ErrQueueNotFound) {
		n, err = 0, nil
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.Logger.Info().Int("tasks", n).Str("queue", h.queue()).Msg("archived tasks requeued")
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]int{"requeued": n}})
}

// Recompute handles POST /api/v1/admin/queue/recompute.
func (h *AdminHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Scheduler == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "queue scheduler unavailable", nil)
		return
	}
	if err := h.Scheduler.ScheduleRecompute(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": map[string]string{"task": TypeRecomputeOpenOrders}})
}

func (h *AdminHandler) queue() string {
	if h.Queue == "" {
		return DefaultQueue
	}
	return h.Queue
}

func (h *AdminHandler) pageSize() int {
	if h.PageSize <= 0 {
		return 20
	}
	return h.PageSize
}

func (h *AdminHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if !common.IsAppError(err) {
		h.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("queue admin request failed")
	}
	common.WriteError(w, err)
}
