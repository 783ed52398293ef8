package factor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sales-commission/internal/commission"
	"github.com/noah-isme/sales-commission/internal/common"
	dbgen "github.com/noah-isme/sales-commission/internal/db/gen"
	"github.com/noah-isme/sales-commission/internal/lock"
	"github.com/noah-isme/sales-commission/internal/obs"
)

type queryProvider interface {
	CreateFactor(ctx context.Context, arg dbgen.CreateFactorParams) (dbgen.CommissionFactor, error)
	UpdateFactor(ctx context.Context, arg dbgen.UpdateFactorParams) (dbgen.CommissionFactor, error)
	DeactivateFactor(ctx context.Context, id pgtype.UUID) (dbgen.CommissionFactor, error)
	GetFactor(ctx context.Context, id pgtype.UUID) (dbgen.CommissionFactor, error)
	ListActiveFactors(ctx context.Context) ([]dbgen.CommissionFactor, error)
	ListAllFactors(ctx context.Context) ([]dbgen.CommissionFactor, error)
}

// Locker serialises writes across API replicas.
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

// RecomputeScheduler is notified after every factor table change.
type RecomputeScheduler interface {
	ScheduleRecompute(ctx context.Context) error
}

// Service administers the commission factor table.
type Service struct {
	queries   queryProvider
	cache     *TableCache
	locker    Locker
	lockTTL   time.Duration
	scheduler RecomputeScheduler
	logger    zerolog.Logger
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries   queryProvider
	Cache     *TableCache
	Locker    Locker
	LockTTL   time.Duration
	Scheduler RecomputeScheduler
	Logger    zerolog.Logger
}

// Input is the writable part of a factor entry.
type Input struct {
	MarkupPercentage *int     `json:"markup_percentage"`
	CommissionFactor *float64 `json:"commission_factor"`
	Active           *bool    `json:"active"`
}

// View is the API representation of an entry.
type View struct {
	commission.Entry
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var errFactorBusy = common.NewAppError(common.CodeConflict, "factor table is being modified, retry shortly", http.StatusConflict, nil)

// NewService constructs a factor service.
func NewService(cfg ServiceConfig) *Service {
	ttl := cfg.LockTTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Service{
		queries:   cfg.Queries,
		cache:     cfg.Cache,
		locker:    cfg.Locker,
		lockTTL:   ttl,
		scheduler: cfg.Scheduler,
		logger:    cfg.Logger,
	}
}

// Create inserts a new entry. Entries are active unless Active is false.
func (s *Service) Create(ctx context.Context, in Input) (View, error) {
	if in.MarkupPercentage == nil || in.CommissionFactor == nil {
		return View{}, common.BadRequest("markup_percentage and commission_factor are required", nil)
	}
	entry := commission.Entry{
		MarkupPercentage: *in.MarkupPercentage,
		Factor:           *in.CommissionFactor,
		Active:           in.Active == nil || *in.Active,
	}
	return s.write(ctx, "create", func(ctx context.Context) (dbgen.CommissionFactor, error) {
		if err := s.checkEntry(ctx, entry); err != nil {
			return dbgen.CommissionFactor{}, err
		}
		return s.queries.CreateFactor(ctx, dbgen.CreateFactorParams{
			MarkupPercentage: int32(entry.MarkupPercentage),
			CommissionFactor: entry.Factor,
			Active:           entry.Active,
		})
	})
}

// Update applies the provided fields to an existing entry.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (View, error) {
	return s.write(ctx, "update", func(ctx context.Context) (dbgen.CommissionFactor, error) {
		current, err := s.queries.GetFactor(ctx, common.PgUUID(id))
		if err != nil {
			return dbgen.CommissionFactor{}, common.FromDB(err, "commission factor")
		}
		entry := toEntry(current)
		if in.MarkupPercentage != nil {
			entry.MarkupPercentage = *in.MarkupPercentage
		}
		if in.CommissionFactor != nil {
			entry.Factor = *in.CommissionFactor
		}
		if in.Active != nil {
			entry.Active = *in.Active
		}
		if err := s.checkEntry(ctx, entry); err != nil {
			return dbgen.CommissionFactor{}, err
		}
		return s.queries.UpdateFactor(ctx, dbgen.UpdateFactorParams{
			ID:               current.ID,
			MarkupPercentage: int32(entry.MarkupPercentage),
			CommissionFactor: entry.Factor,
			Active:           entry.Active,
		})
	})
}

// Deactivate soft-deletes an entry.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (View, error) {
	return s.write(ctx, "deactivate", func(ctx context.Context) (dbgen.CommissionFactor, error) {
		return s.queries.DeactivateFactor(ctx, common.PgUUID(id))
	})
}

// Get returns one entry, active or not.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (View, error) {
	row, err := s.queries.GetFactor(ctx, common.PgUUID(id))
	if err != nil {
		return View{}, common.FromDB(err, "commission factor")
	}
	return toView(row), nil
}

// List returns entries ordered by markup percentage.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]View, error) {
	var (
		rows []dbgen.CommissionFactor
		err  error
	)
	if includeInactive {
		rows, err = s.queries.ListAllFactors(ctx)
	} else {
		rows, err = s.queries.ListActiveFactors(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list factors: %w", err)
	}
	out := make([]View, 0, len(rows))
	for _, row := range rows {
		out = append(out, toView(row))
	}
	return out, nil
}

// ActiveTable returns the active lookup table, served from Redis when cached.
func (s *Service) ActiveTable(ctx context.Context) (commission.Table, error) {
	entries, ok, err := s.cache.Get(ctx)
	if err != nil {
		obs.IncFactorCache("error")
		s.logger.Warn().Err(err).Msg("factor cache read failed")
	}
	if ok {
		obs.IncFactorCache("hit")
		return commission.NewTable(entries), nil
	}
	obs.IncFactorCache("miss")
	gen, genErr := s.cache.Generation(ctx)
	rows, err := s.queries.ListActiveFactors(ctx)
	if err != nil {
		return commission.Table{}, fmt.Errorf("load factor table: %w", err)
	}
	entries = make([]commission.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toEntry(row))
	}
	switch {
	case genErr != nil:
		s.logger.Warn().Err(genErr).Msg("factor cache generation read failed")
	default:
		stored, err := s.cache.Set(ctx, gen, entries)
		if err != nil {
			s.logger.Warn().Err(err).Msg("factor cache write failed")
		} else if !stored {
			obs.IncFactorCache("stale")
		}
	}
	return commission.NewTable(entries), nil
}

// Resolve looks markup up in the active table.
func (s *Service) Resolve(ctx context.Context, markup float64) (commission.Resolution, error) {
	table, err := s.ActiveTable(ctx)
	if err != nil {
		return commission.Resolution{}, err
	}
	res := table.Resolve(markup)
	Observe(obs.LoggerWithTrace(ctx, s.logger), res)
	return res, nil
}

// ActiveFactorCount reports how many entries are active. Used by readiness.
func (s *Service) ActiveFactorCount(ctx context.Context) (int, error) {
	table, err := s.ActiveTable(ctx)
	if err != nil {
		return 0, err
	}
	return table.Len(), nil
}

// Observe records a lookup outcome. Gaps and an empty table are warnings
// because they silently produce a zero commission.
func Observe(logger zerolog.Logger, res commission.Resolution) {
	obs.IncFactorLookup(string(res.Outcome))
	switch res.Outcome {
	case commission.OutcomeGap:
		logger.Warn().Int("markup_percentage", res.Markup).Msg("markup falls between factor breakpoints, commission factor 0")
	case commission.OutcomeEmpty:
		logger.Warn().Int("markup_percentage", res.Markup).Msg("no active commission factors, commission factor 0")
	case commission.OutcomeBelowMin, commission.OutcomeAboveMax:
		logger.Info().Int("markup_percentage", res.Markup).Str("outcome", string(res.Outcome)).
			Float64("commission_factor", res.Factor).Msg("markup outside factor table, clamped")
	}
}

func (s *Service) checkEntry(ctx context.Context, entry commission.Entry) error {
	if err := commission.ValidateEntry(entry); err != nil {
		return err
	}
	rows, err := s.queries.ListActiveFactors(ctx)
	if err != nil {
		return fmt.Errorf("list active factors: %w", err)
	}
	existing := make([]commission.Entry, 0, len(rows))
	for _, row := range rows {
		existing = append(existing, toEntry(row))
	}
	return commission.CheckUnique(entry, existing)
}

func (s *Service) write(ctx context.Context, op string, fn func(context.Context) (dbgen.CommissionFactor, error)) (View, error) {
	ctx, span := obs.StartSpan(ctx, "factor."+op)
	defer span.End()
	var row dbgen.CommissionFactor
	run := func(ctx context.Context) error {
		var err error
		row, err = fn(ctx)
		return err
	}
	var err error
	if s.locker != nil {
		err = s.locker.WithLock(ctx, lock.FactorTableKey, s.lockTTL, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		span.RecordError(err)
		obs.IncFactorWrite(op, "error")
		return View{}, mapWriteError(err)
	}
	obs.IncFactorWrite(op, "ok")

	logger := obs.LoggerWithTrace(ctx, s.logger)
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("factor cache invalidation failed")
	}
	if s.scheduler != nil {
		if err := s.scheduler.ScheduleRecompute(ctx); err != nil {
			logger.Error().Err(err).Str("op", op).Msg("schedule open order recompute failed")
		}
	}
	view := toView(row)
	logger.Info().Str("op", op).Str("factor_id", view.ID.String()).Str("entry", view.DisplayName).Msg("commission factor written")
	return view, nil
}

func mapWriteError(err error) error {
	var verr *commission.ValidationError
	switch {
	case errors.As(err, &verr):
		return common.Validation(verr.Message, verr).WithDetails(verr)
	case errors.Is(err, lock.ErrNotAcquired):
		return errFactorBusy
	case common.IsUniqueViolation(err):
		verr = &commission.ValidationError{Field: "markup_percentage", Rule: "unique", Message: "Markup percentage already exists"}
		return common.Validation(verr.Message, err).WithDetails(verr)
	}
	return common.FromDB(err, "commission factor")
}

func toEntry(row dbgen.CommissionFactor) commission.Entry {
	return commission.Entry{
		ID:               common.FromPgUUID(row.ID),
		MarkupPercentage: int(row.MarkupPercentage),
		Factor:           row.CommissionFactor,
		Active:           row.Active,
	}
}

func toView(row dbgen.CommissionFactor) View {
	e := toEntry(row)
	return View{Entry: e, DisplayName: e.DisplayName(), CreatedAt: row.CreatedAt.Time, UpdatedAt: row.UpdatedAt.Time}
}
