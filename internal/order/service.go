package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/sales-commission/internal/commission"
	"github.com/noah-isme/sales-commission/internal/common"
	dbgen "github.com/noah-isme/sales-commission/internal/db/gen"
	"github.com/noah-isme/sales-commission/internal/factor"
	"github.com/noah-isme/sales-commission/internal/obs"
)

// Order states.
const (
	StateDraft  = "draft"
	StateSent   = "sent"
	StateSale   = "sale"
	StateDone   = "done"
	StateCancel = "cancel"
)

// Commission payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// DisplaySection marks a section header line.
const DisplaySection = "line_section"

// CodeVendorLocked is returned when the vendor of a confirmed order line is edited.
const CodeVendorLocked = "VENDOR_LOCKED"

// ErrVendorLocked is wrapped by the VENDOR_LOCKED AppError.
var ErrVendorLocked = errors.New("order: vendor is locked for this order state")

// TableSource supplies the active commission factor table.
type TableSource interface {
	ActiveTable(ctx context.Context) (commission.Table, error)
}

// Service owns the order write path. Every mutation recomputes the order's
// derived commission fields in the same transaction.
type Service struct {
	store   Store
	factors TableSource
	logger  zerolog.Logger
	now     func() time.Time
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Store   Store
	Factors TableSource
	Logger  zerolog.Logger
}

// NewService constructs an order service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{store: cfg.Store, factors: cfg.Factors, logger: cfg.Logger, now: time.Now}
}

// Order is the API representation of a sale order with its lines.
type Order struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	CustomerName  string    `json:"customer_name"`
	CompanyName   string    `json:"company_name"`
	State         string    `json:"state"`
	AmountUntaxed float64   `json:"amount_untaxed"`
	commission.Totals
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Line is the API representation of an order line.
type Line struct {
	ID               uuid.UUID  `json:"id"`
	OrderID          uuid.UUID  `json:"order_id"`
	Sequence         int        `json:"sequence"`
	DisplayType      *string    `json:"display_type"`
	Name             string     `json:"name"`
	ProductID        *uuid.UUID `json:"product_id"`
	Quantity         float64    `json:"quantity"`
	UnitPrice        float64    `json:"unit_price"`
	UnitCost         *float64   `json:"unit_cost"`
	LineSubtotal     float64    `json:"line_subtotal"`
	VendorReference  *string    `json:"vendor_reference"`
	MarkupPercentage int        `json:"markup_percentage"`
	MarkupAmount     float64    `json:"markup_amount"`
	CommissionFactor float64    `json:"commission_factor"`
	CommissionAmount float64    `json:"commission_amount"`
	PaymentStatus    string     `json:"commission_payment_status"`
	CanEditVendor    bool       `json:"can_edit_vendor"`
}

// CreateOrderInput creates a quotation, optionally with lines.
type CreateOrderInput struct {
	Name         string      `json:"name" validate:"required,max=64"`
	CustomerName string      `json:"customer_name" validate:"max=255"`
	CompanyName  string      `json:"company_name" validate:"max=255"`
	State        string      `json:"state" validate:"omitempty,oneof=draft sent sale done cancel"`
	Lines        []LineInput `json:"lines" validate:"dive"`
}

// LineInput adds a line. Price and cost default to the product's list and
// standard price when a product is given.
type LineInput struct {
	Name            string     `json:"name" validate:"required,max=512"`
	DisplayType     *string    `json:"display_type" validate:"omitempty,oneof=line_section"`
	ProductID       *uuid.UUID `json:"product_id"`
	Quantity        *float64   `json:"quantity"`
	UnitPrice       *float64   `json:"unit_price"`
	UnitCost        *float64   `json:"unit_cost"`
	Subtotal        *float64   `json:"line_subtotal"`
	VendorReference *string    `json:"vendor_reference" validate:"omitempty,max=255"`
}

// UpdateLineInput changes the economics of a line.
type UpdateLineInput struct {
	Quantity      *float64 `json:"quantity"`
	UnitPrice     *float64 `json:"unit_price"`
	UnitCost      *float64 `json:"unit_cost"`
	ClearUnitCost bool     `json:"clear_unit_cost"`
	Subtotal      *float64 `json:"line_subtotal"`
}

// UpdateOrderInput changes host-owned order fields.
type UpdateOrderInput struct {
	State         *string  `json:"state" validate:"omitempty,oneof=draft sent sale done cancel"`
	AmountUntaxed *float64 `json:"amount_untaxed"`
}

// RecomputeSummary reports a bulk recompute.
type RecomputeSummary struct {
	Orders int `json:"orders"`
	Failed int `json:"failed"`
}

// CanEditVendor reports whether a line's vendor may change while its order is in state.
func CanEditVendor(state string) bool {
	return state == StateDraft || state == StateSent
}

// CreateOrder inserts a quotation and its lines, then computes commissions.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (Order, error) {
	if err := validateInput(in); err != nil {
		return Order{}, err
	}
	state := in.State
	if state == "" {
		state = StateDraft
	}
	table, err := s.factors.ActiveTable(ctx)
	if err != nil {
		return Order{}, err
	}
	var out Order
	err = s.store.InTx(ctx, func(q Querier) error {
		row, err := q.CreateOrder(ctx, dbgen.CreateOrderParams{
			Name:         in.Name,
			CustomerName: in.CustomerName,
			CompanyName:  in.CompanyName,
			State:        state,
		})
		if err != nil {
			return common.FromDB(err, "order")
		}
		for i, line := range in.Lines {
			if _, err := s.insertLine(ctx, q, row.ID, int32((i+1)*10), line); err != nil {
				return err
			}
		}
		if _, err := q.SyncOrderAmountUntaxed(ctx, row.ID); err != nil {
			return fmt.Errorf("sync amount untaxed: %w", err)
		}
		out, err = s.recomputeTx(ctx, q, row.ID, table)
		return err
	})
	return out, err
}

// GetOrder loads an order with its lines.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	q := s.store.Queries()
	row, err := q.GetOrder(ctx, common.PgUUID(id))
	if err != nil {
		return Order{}, common.FromDB(err, "order")
	}
	lines, err := q.ListOrderLines(ctx, row.ID)
	if err != nil {
		return Order{}, fmt.Errorf("list order lines: %w", err)
	}
	return toOrder(row, lines), nil
}

// UpdateOrder changes the state or the untaxed amount and recomputes.
func (s *Service) UpdateOrder(ctx context.Context, id uuid.UUID, in UpdateOrderInput) (Order, error) {
	if err := validateInput(in); err != nil {
		return Order{}, err
	}
	return s.Mutate(ctx, id, func(q Querier, row dbgen.SaleOrder) error {
		if in.State != nil && *in.State != row.State {
			if _, err := q.UpdateOrderState(ctx, dbgen.UpdateOrderStateParams{ID: row.ID, State: *in.State}); err != nil {
				return fmt.Errorf("update order state: %w", err)
			}
		}
		if in.AmountUntaxed != nil {
			if _, err := q.UpdateOrderAmountUntaxed(ctx, dbgen.UpdateOrderAmountUntaxedParams{ID: row.ID, AmountUntaxed: *in.AmountUntaxed}); err != nil {
				return fmt.Errorf("update amount untaxed: %w", err)
			}
		}
		return nil
	})
}

// AddLine appends a line after the last sequence and recomputes.
func (s *Service) AddLine(ctx context.Context, orderID uuid.UUID, in LineInput) (Order, error) {
	if err := validateInput(in); err != nil {
		return Order{}, err
	}
	return s.Mutate(ctx, orderID, func(q Querier, row dbgen.SaleOrder) error {
		maxSeq, err := q.MaxOrderLineSequence(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("max line sequence: %w", err)
		}
		if _, err := s.insertLine(ctx, q, row.ID, maxSeq+10, in); err != nil {
			return err
		}
		if _, err := q.SyncOrderAmountUntaxed(ctx, row.ID); err != nil {
			return fmt.Errorf("sync amount untaxed: %w", err)
		}
		return nil
	})
}

// UpdateLine changes quantity, price, cost or subtotal of a line and recomputes its order.
func (s *Service) UpdateLine(ctx context.Context, lineID uuid.UUID, in UpdateLineInput) (Order, error) {
	line, err := s.store.Queries().GetOrderLine(ctx, common.PgUUID(lineID))
	if err != nil {
		return Order{}, common.FromDB(err, "order line")
	}
	if line.DisplayType.Valid {
		return Order{}, common.Validation("section lines carry no economics", nil)
	}
	return s.Mutate(ctx, common.FromPgUUID(line.OrderID), func(q Querier, _ dbgen.SaleOrder) error {
		current, err := q.GetOrderLine(ctx, line.ID)
		if err != nil {
			return common.FromDB(err, "order line")
		}
		params := dbgen.UpdateOrderLineEconomicsParams{
			ID:        current.ID,
			Quantity:  current.Quantity,
			UnitPrice: current.UnitPrice,
			UnitCost:  current.UnitCost,
		}
		if in.Quantity != nil {
			params.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			params.UnitPrice = *in.UnitPrice
		}
		switch {
		case in.ClearUnitCost:
			params.UnitCost = pgtype.Float8{}
		case in.UnitCost != nil:
			params.UnitCost = pgtype.Float8{Float64: *in.UnitCost, Valid: true}
		}
		params.LineSubtotal = commission.LineInput{
			UnitPrice: params.UnitPrice,
			Quantity:  params.Quantity,
			Subtotal:  in.Subtotal,
		}.LineSubtotal()
		if _, err := q.UpdateOrderLineEconomics(ctx, params); err != nil {
			return fmt.Errorf("update line: %w", err)
		}
		if _, err := q.SyncOrderAmountUntaxed(ctx, current.OrderID); err != nil {
			return fmt.Errorf("sync amount untaxed: %w", err)
		}
		return nil
	})
}

// SetLineVendor changes the vendor reference of a line. Only quotations in
// draft or sent state accept the change; the state is checked under a row lock.
func (s *Service) SetLineVendor(ctx context.Context, lineID uuid.UUID, vendor *string) (Line, error) {
	var out Line
	err := s.store.InTx(ctx, func(q Querier) error {
		line, err := q.GetOrderLine(ctx, common.PgUUID(lineID))
		if err != nil {
			return common.FromDB(err, "order line")
		}
		row, err := q.GetOrderForUpdate(ctx, line.OrderID)
		if err != nil {
			return common.FromDB(err, "order")
		}
		if !CanEditVendor(row.State) {
			obs.IncVendorEditRejected()
			return common.NewAppError(CodeVendorLocked,
				"Product vendor can only be modified in 'Draft' or 'Quotation Sent' states",
				http.StatusUnprocessableEntity, ErrVendorLocked).
				WithDetails(map[string]string{"state": row.State})
		}
		updated, err := q.UpdateOrderLineVendor(ctx, dbgen.UpdateOrderLineVendorParams{
			ID:              line.ID,
			VendorReference: textOrNull(vendor),
		})
		if err != nil {
			return fmt.Errorf("update line vendor: %w", err)
		}
		out = toLine(updated, row.State)
		return nil
	})
	return out, err
}

// TogglePaymentStatus switches a line's commission payment status between pending and paid.
func (s *Service) TogglePaymentStatus(ctx context.Context, lineID uuid.UUID) (Line, error) {
	return s.setPayment(ctx, lineID, func(current string) string {
		if current == PaymentPending {
			return PaymentPaid
		}
		return PaymentPending
	})
}

// SetPaymentStatus sets a line's commission payment status explicitly.
func (s *Service) SetPaymentStatus(ctx context.Context, lineID uuid.UUID, status string) (Line, error) {
	if status != PaymentPending && status != PaymentPaid {
		return Line{}, common.Validation("payment status must be pending or paid", nil).
			WithDetails(map[string]string{"field": "status", "rule": "oneof"})
	}
	return s.setPayment(ctx, lineID, func(string) string { return status })
}

// RecomputeOrder recomputes one order against the current factor table.
func (s *Service) RecomputeOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return s.Mutate(ctx, id, func(Querier, dbgen.SaleOrder) error { return nil })
}

// RecomputeOpenOrders recomputes every draft or sent order. Confirmed orders
// keep the commission computed while they were open.
func (s *Service) RecomputeOpenOrders(ctx context.Context) (summary RecomputeSummary, err error) {
	ctx, span := obs.StartSpan(ctx, "order.RecomputeOpenOrders")
	defer func() {
		span.SetAttributes(attribute.Int("orders", summary.Orders), attribute.Int("failed", summary.Failed))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	ids, err := s.store.Queries().ListOrderIDsByStates(ctx, []string{StateDraft, StateSent})
	if err != nil {
		return RecomputeSummary{}, fmt.Errorf("list open orders: %w", err)
	}
	table, err := s.factors.ActiveTable(ctx)
	if err != nil {
		return RecomputeSummary{}, err
	}
	logger := obs.LoggerWithTrace(ctx, s.logger)
	summary = RecomputeSummary{Orders: len(ids)}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		start := s.now()
		err := s.store.InTx(ctx, func(q Querier) error {
			_, err := s.recomputeTx(ctx, q, id, table)
			return err
		})
		s.observe(start, err)
		if err != nil {
			summary.Failed++
			logger.Error().Err(err).Str("order_id", common.FromPgUUID(id).String()).Msg("recompute open order failed")
		}
	}
	logger.Info().Int("orders", summary.Orders).Int("failed", summary.Failed).Msg("open orders recomputed")
	if summary.Failed > 0 {
		return summary, fmt.Errorf("recompute open orders: %d of %d failed", summary.Failed, summary.Orders)
	}
	return summary, nil
}

// Mutate locks the order, applies fn and recomputes in one transaction.
func (s *Service) Mutate(ctx context.Context, id uuid.UUID, fn func(q Querier, row dbgen.SaleOrder) error) (Order, error) {
	ctx, span := obs.StartSpan(ctx, "order.Mutate", trace.WithAttributes(attribute.String("order_id", id.String())))
	defer span.End()
	table, err := s.factors.ActiveTable(ctx)
	if err != nil {
		return Order{}, err
	}
	start := s.now()
	var out Order
	err = s.store.InTx(ctx, func(q Querier) error {
		row, err := q.GetOrderForUpdate(ctx, common.PgUUID(id))
		if err != nil {
			return common.FromDB(err, "order")
		}
		if err := fn(q, row); err != nil {
			return err
		}
		out, err = s.recomputeTx(ctx, q, row.ID, table)
		return err
	})
	s.observe(start, err)
	if err != nil {
		span.RecordError(err)
	}
	return out, err
}

// recomputeTx derives every line and the order totals from the stored lines.
func (s *Service) recomputeTx(ctx context.Context, q Querier, id pgtype.UUID, table commission.Table) (Order, error) {
	row, err := q.GetOrder(ctx, id)
	if err != nil {
		return Order{}, common.FromDB(err, "order")
	}
	lines, err := q.ListOrderLines(ctx, id)
	if err != nil {
		return Order{}, fmt.Errorf("list order lines: %w", err)
	}
	inputs := make([]commission.LineInput, len(lines))
	for i, line := range lines {
		inputs[i] = toLineInput(line)
	}
	figures, totals := commission.Recompute(inputs, row.AmountUntaxed, table)

	logger := obs.LoggerWithTrace(ctx, s.logger).With().Str("order_id", common.FromPgUUID(id).String()).Logger()
	for i, fig := range figures {
		line := &lines[i]
		if fig.Lookup != commission.OutcomeSkipped {
			factor.Observe(logger.With().Str("line_id", common.FromPgUUID(line.ID).String()).Logger(), commission.Resolution{
				Markup:  fig.MarkupPercentage,
				Factor:  fig.CommissionFactor,
				Outcome: fig.Lookup,
			})
		}
		if sameFigures(*line, fig) {
			continue
		}
		if err := q.UpdateOrderLineCommission(ctx, dbgen.UpdateOrderLineCommissionParams{
			ID:               line.ID,
			MarkupPercentage: int32(fig.MarkupPercentage),
			MarkupAmount:     fig.MarkupAmount,
			CommissionFactor: fig.CommissionFactor,
			CommissionAmount: fig.CommissionAmount,
		}); err != nil {
			return Order{}, fmt.Errorf("update line commission: %w", err)
		}
		line.MarkupPercentage = int32(fig.MarkupPercentage)
		line.MarkupAmount = fig.MarkupAmount
		line.CommissionFactor = fig.CommissionFactor
		line.CommissionAmount = fig.CommissionAmount
	}
	if err := q.UpdateOrderTotals(ctx, dbgen.UpdateOrderTotalsParams{
		ID:                    id,
		TotalCost:             totals.TotalCost,
		TotalMarkupAmount:     totals.TotalMarkupAmount,
		TotalMarkupPercentage: int32(totals.TotalMarkupPercentage),
		TotalCommissionFactor: totals.TotalCommissionFactor,
		TotalCommissionAmount: totals.TotalCommissionAmount,
	}); err != nil {
		return Order{}, fmt.Errorf("update order totals: %w", err)
	}
	row.TotalCost = totals.TotalCost
	row.TotalMarkupAmount = totals.TotalMarkupAmount
	row.TotalMarkupPercentage = int32(totals.TotalMarkupPercentage)
	row.TotalCommissionFactor = totals.TotalCommissionFactor
	row.TotalCommissionAmount = totals.TotalCommissionAmount
	return toOrder(row, lines), nil
}

func (s *Service) insertLine(ctx context.Context, q Querier, orderID pgtype.UUID, seq int32, in LineInput) (dbgen.SaleOrderLine, error) {
	params := dbgen.CreateOrderLineParams{
		OrderID:         orderID,
		Sequence:        seq,
		Name:            in.Name,
		VendorReference: textOrNull(in.VendorReference),
	}
	if in.DisplayType != nil {
		params.DisplayType = pgtype.Text{String: *in.DisplayType, Valid: true}
		return q.CreateOrderLine(ctx, params)
	}
	params.Quantity = 1
	if in.Quantity != nil {
		params.Quantity = *in.Quantity
	}
	if in.ProductID != nil {
		product, err := q.GetProduct(ctx, common.PgUUID(*in.ProductID))
		if err != nil {
			return dbgen.SaleOrderLine{}, common.FromDB(err, "product")
		}
		params.ProductID = product.ID
		params.UnitPrice = product.ListPrice
		params.UnitCost = pgtype.Float8{Float64: product.StandardPrice, Valid: true}
	}
	if in.UnitPrice != nil {
		params.UnitPrice = *in.UnitPrice
	}
	if in.UnitCost != nil {
		params.UnitCost = pgtype.Float8{Float64: *in.UnitCost, Valid: true}
	}
	params.LineSubtotal = commission.LineInput{
		UnitPrice: params.UnitPrice,
		Quantity:  params.Quantity,
		Subtotal:  in.Subtotal,
	}.LineSubtotal()
	line, err := q.CreateOrderLine(ctx, params)
	if err != nil {
		return dbgen.SaleOrderLine{}, fmt.Errorf("create order line: %w", err)
	}
	return line, nil
}

func (s *Service) setPayment(ctx context.Context, lineID uuid.UUID, next func(current string) string) (Line, error) {
	var out Line
	err := s.store.InTx(ctx, func(q Querier) error {
		line, err := q.GetOrderLine(ctx, common.PgUUID(lineID))
		if err != nil {
			return common.FromDB(err, "order line")
		}
		row, err := q.GetOrder(ctx, line.OrderID)
		if err != nil {
			return common.FromDB(err, "order")
		}
		updated, err := q.SetOrderLinePaymentStatus(ctx, dbgen.SetOrderLinePaymentStatusParams{
			ID:            line.ID,
			PaymentStatus: next(line.PaymentStatus),
		})
		if err != nil {
			return fmt.Errorf("set payment status: %w", err)
		}
		out = toLine(updated, row.State)
		return nil
	})
	return out, err
}

func (s *Service) observe(start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	obs.ObserveOrderRecompute(result, obs.DurationMillis(s.now().Sub(start)))
}

func validateInput(v any) error {
	err := commission.Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return common.BadRequest("invalid request", err)
	}
	fe := verrs[0]
	return common.Validation(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()), err).
		WithDetails(map[string]string{"field": fe.Field(), "rule": fe.Tag()})
}

func sameFigures(line dbgen.SaleOrderLine, fig commission.LineFigures) bool {
	return int(line.MarkupPercentage) == fig.MarkupPercentage &&
		line.MarkupAmount == fig.MarkupAmount &&
		line.CommissionFactor == fig.CommissionFactor &&
		line.CommissionAmount == fig.CommissionAmount
}

func toLineInput(line dbgen.SaleOrderLine) commission.LineInput {
	if line.DisplayType.Valid {
		return commission.LineInput{}
	}
	in := commission.LineInput{
		UnitPrice: line.UnitPrice,
		Quantity:  line.Quantity,
		Subtotal:  &line.LineSubtotal,
	}
	if line.UnitCost.Valid {
		cost := line.UnitCost.Float64
		in.UnitCost = &cost
	}
	return in
}

func textOrNull(v *string) pgtype.Text {
	if v == nil || *v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *v, Valid: true}
}

func toOrder(row dbgen.SaleOrder, lines []dbgen.SaleOrderLine) Order {
	out := Order{
		ID:            common.FromPgUUID(row.ID),
		Name:          row.Name,
		CustomerName:  row.CustomerName,
		CompanyName:   row.CompanyName,
		State:         row.State,
		AmountUntaxed: row.AmountUntaxed,
		Totals: commission.Totals{
			TotalCost:             row.TotalCost,
			TotalMarkupAmount:     row.TotalMarkupAmount,
			TotalMarkupPercentage: int(row.TotalMarkupPercentage),
			TotalCommissionFactor: row.TotalCommissionFactor,
			TotalCommissionAmount: row.TotalCommissionAmount,
		},
		Lines:     make([]Line, 0, len(lines)),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
	for _, line := range lines {
		out.Lines = append(out.Lines, toLine(line, row.State))
	}
	return out
}

func toLine(line dbgen.SaleOrderLine, state string) Line {
	out := Line{
		ID:               common.FromPgUUID(line.ID),
		OrderID:          common.FromPgUUID(line.OrderID),
		Sequence:         int(line.Sequence),
		Name:             line.Name,
		Quantity:         line.Quantity,
		UnitPrice:        line.UnitPrice,
		LineSubtotal:     line.LineSubtotal,
		MarkupPercentage: int(line.MarkupPercentage),
		MarkupAmount:     line.MarkupAmount,
		CommissionFactor: line.CommissionFactor,
		CommissionAmount: line.CommissionAmount,
		PaymentStatus:    line.PaymentStatus,
		CanEditVendor:    CanEditVendor(state),
	}
	if line.DisplayType.Valid {
		dt := line.DisplayType.String
		out.DisplayType = &dt
	}
	if line.ProductID.Valid {
		pid := common.FromPgUUID(line.ProductID)
		out.ProductID = &pid
	}
	if line.UnitCost.Valid {
		cost := line.UnitCost.Float64
		out.UnitCost = &cost
	}
	if line.VendorReference.Valid {
		ref := line.VendorReference.String
		out.VendorReference = &ref
	}
	return out
}
