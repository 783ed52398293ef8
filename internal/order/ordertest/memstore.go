// Package ordertest provides an in-memory order.Store for tests.
package ordertest

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/noah-isme/sales-commission/internal/db/gen"
	"github.com/noah-isme/sales-commission/internal/order"
)

// MemStore keeps orders, lines and products in maps. InTx snapshots the
// maps and restores them when the callback fails.
type MemStore struct {
	mu       sync.Mutex
	Orders   map[uuid.UUID]dbgen.SaleOrder
	Lines    map[uuid.UUID]dbgen.SaleOrderLine
	Products map[uuid.UUID]dbgen.Product

	// CommissionWrites counts UpdateOrderLineCommission calls.
	CommissionWrites int
	clock            time.Time
}

var _ order.Store = (*MemStore)(nil)
var _ order.Querier = (*memQueries)(nil)

// New returns an empty store.
func New() *MemStore {
	return &MemStore{
		Orders:   map[uuid.UUID]dbgen.SaleOrder{},
		Lines:    map[uuid.UUID]dbgen.SaleOrderLine{},
		Products: map[uuid.UUID]dbgen.Product{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AddProduct registers a product and returns its id.
func (m *MemStore) AddProduct(name string, listPrice, standardPrice float64) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.Products[id] = dbgen.Product{ID: pgID(id), Name: name, ListPrice: listPrice, StandardPrice: standardPrice}
	return id
}

// Queries returns queries bound to the store.
func (m *MemStore) Queries() order.Querier { return &memQueries{m: m} }

// InTx runs fn and rolls the maps back when it fails.
func (m *MemStore) InTx(_ context.Context, fn func(q order.Querier) error) error {
	m.mu.Lock()
	orders := cloneMap(m.Orders)
	lines := cloneMap(m.Lines)
	m.mu.Unlock()
	if err := fn(&memQueries{m: m}); err != nil {
		m.mu.Lock()
		m.Orders, m.Lines = orders, lines
		m.mu.Unlock()
		return err
	}
	return nil
}

// LinesOf returns the stored lines of an order ordered by sequence.
func (m *MemStore) LinesOf(orderID uuid.UUID) []dbgen.SaleOrderLine {
	out, _ := m.Queries().ListOrderLines(context.Background(), pgID(orderID))
	return out
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func pgID(id uuid.UUID) pgtype.UUID { return pgtype.UUID{Bytes: id, Valid: true} }

func key(id pgtype.UUID) uuid.UUID { return uuid.UUID(id.Bytes) }

type memQueries struct {
	m *MemStore
}

func (q *memQueries) now() pgtype.Timestamptz {
	q.m.clock = q.m.clock.Add(time.Second)
	return pgtype.Timestamptz{Time: q.m.clock, Valid: true}
}

func (q *memQueries) CreateOrder(_ context.Context, arg dbgen.CreateOrderParams) (dbgen.SaleOrder, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	id := uuid.New()
	ts := q.now()
	row := dbgen.SaleOrder{
		ID: pgID(id), Name: arg.Name, CustomerName: arg.CustomerName, CompanyName: arg.CompanyName,
		State: arg.State, AmountUntaxed: arg.AmountUntaxed, CreatedAt: ts, UpdatedAt: ts,
	}
	q.m.Orders[id] = row
	return row, nil
}

func (q *memQueries) GetOrder(_ context.Context, id pgtype.UUID) (dbgen.SaleOrder, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	row, ok := q.m.Orders[key(id)]
	if !ok {
		return dbgen.SaleOrder{}, pgx.ErrNoRows
	}
	return row, nil
}

func (q *memQueries) GetOrderForUpdate(ctx context.Context, id pgtype.UUID) (dbgen.SaleOrder, error) {
	return q.GetOrder(ctx, id)
}

func (q *memQueries) updateOrder(id pgtype.UUID, fn func(*dbgen.SaleOrder)) (dbgen.SaleOrder, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	row, ok := q.m.Orders[key(id)]
	if !ok {
		return dbgen.SaleOrder{}, pgx.ErrNoRows
	}
	fn(&row)
	row.UpdatedAt = q.now()
	q.m.Orders[key(id)] = row
	return row, nil
}

func (q *memQueries) UpdateOrderState(_ context.Context, arg dbgen.UpdateOrderStateParams) (dbgen.SaleOrder, error) {
	return q.updateOrder(arg.ID, func(o *dbgen.SaleOrder) { o.State = arg.State })
}

func (q *memQueries) UpdateOrderAmountUntaxed(_ context.Context, arg dbgen.UpdateOrderAmountUntaxedParams) (dbgen.SaleOrder, error) {
	return q.updateOrder(arg.ID, func(o *dbgen.SaleOrder) { o.AmountUntaxed = arg.AmountUntaxed })
}

func (q *memQueries) SyncOrderAmountUntaxed(_ context.Context, id pgtype.UUID) (dbgen.SaleOrder, error) {
	q.m.mu.Lock()
	var sum float64
	for _, line := range q.m.Lines {
		if key(line.OrderID) == key(id) && !line.DisplayType.Valid {
			sum += line.LineSubtotal
		}
	}
	q.m.mu.Unlock()
	return q.updateOrder(id, func(o *dbgen.SaleOrder) { o.AmountUntaxed = sum })
}

func (q *memQueries) UpdateOrderTotals(_ context.Context, arg dbgen.UpdateOrderTotalsParams) error {
	_, err := q.updateOrder(arg.ID, func(o *dbgen.SaleOrder) {
		o.TotalCost = arg.TotalCost
		o.TotalMarkupAmount = arg.TotalMarkupAmount
		o.TotalMarkupPercentage = arg.TotalMarkupPercentage
		o.TotalCommissionFactor = arg.TotalCommissionFactor
		o.TotalCommissionAmount = arg.TotalCommissionAmount
	})
	return err
}

func (q *memQueries) ListOrderIDsByStates(_ context.Context, states []string) ([]pgtype.UUID, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	rows := make([]dbgen.SaleOrder, 0, len(q.m.Orders))
	for _, row := range q.m.Orders {
		if slices.Contains(states, row.State) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Time.Before(rows[j].CreatedAt.Time) })
	out := make([]pgtype.UUID, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ID)
	}
	return out, nil
}

func (q *memQueries) CreateOrderLine(_ context.Context, arg dbgen.CreateOrderLineParams) (dbgen.SaleOrderLine, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	if _, ok := q.m.Orders[key(arg.OrderID)]; !ok {
		return dbgen.SaleOrderLine{}, pgx.ErrNoRows
	}
	id := uuid.New()
	ts := q.now()
	row := dbgen.SaleOrderLine{
		ID: pgID(id), OrderID: arg.OrderID, Sequence: arg.Sequence, DisplayType: arg.DisplayType,
		Name: arg.Name, ProductID: arg.ProductID, Quantity: arg.Quantity, UnitPrice: arg.UnitPrice,
		UnitCost: arg.UnitCost, LineSubtotal: arg.LineSubtotal, VendorReference: arg.VendorReference,
		PaymentStatus: "pending", CreatedAt: ts, UpdatedAt: ts,
	}
	q.m.Lines[id] = row
	return row, nil
}

func (q *memQueries) GetOrderLine(_ context.Context, id pgtype.UUID) (dbgen.SaleOrderLine, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	row, ok := q.m.Lines[key(id)]
	if !ok {
		return dbgen.SaleOrderLine{}, pgx.ErrNoRows
	}
	return row, nil
}

func (q *memQueries) ListOrderLines(_ context.Context, orderID pgtype.UUID) ([]dbgen.SaleOrderLine, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	out := []dbgen.SaleOrderLine{}
	for _, row := range q.m.Lines {
		if key(row.OrderID) == key(orderID) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].CreatedAt.Time.Before(out[j].CreatedAt.Time)
	})
	return out, nil
}

func (q *memQueries) MaxOrderLineSequence(ctx context.Context, orderID pgtype.UUID) (int32, error) {
	lines, _ := q.ListOrderLines(ctx, orderID)
	var highest int32
	for _, line := range lines {
		if line.Sequence > highest {
			highest = line.Sequence
		}
	}
	return highest, nil
}

func (q *memQueries) CountOrderSectionsWithPrefix(ctx context.Context, arg dbgen.CountOrderSectionsWithPrefixParams) (int64, error) {
	lines, _ := q.ListOrderLines(ctx, arg.OrderID)
	var n int64
	for _, line := range lines {
		if line.DisplayType.Valid && line.DisplayType.String == "line_section" && strings.HasPrefix(line.Name, arg.Prefix) {
			n++
		}
	}
	return n, nil
}

func (q *memQueries) updateLine(id pgtype.UUID, fn func(*dbgen.SaleOrderLine)) (dbgen.SaleOrderLine, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	row, ok := q.m.Lines[key(id)]
	if !ok {
		return dbgen.SaleOrderLine{}, pgx.ErrNoRows
	}
	fn(&row)
	row.UpdatedAt = q.now()
	q.m.Lines[key(id)] = row
	return row, nil
}

func (q *memQueries) UpdateOrderLineEconomics(_ context.Context, arg dbgen.UpdateOrderLineEconomicsParams) (dbgen.SaleOrderLine, error) {
	return q.updateLine(arg.ID, func(l *dbgen.SaleOrderLine) {
		l.Quantity = arg.Quantity
		l.UnitPrice = arg.UnitPrice
		l.UnitCost = arg.UnitCost
		l.LineSubtotal = arg.LineSubtotal
	})
}

func (q *memQueries) UpdateOrderLineCommission(_ context.Context, arg dbgen.UpdateOrderLineCommissionParams) error {
	_, err := q.updateLine(arg.ID, func(l *dbgen.SaleOrderLine) {
		l.MarkupPercentage = arg.MarkupPercentage
		l.MarkupAmount = arg.MarkupAmount
		l.CommissionFactor = arg.CommissionFactor
		l.CommissionAmount = arg.CommissionAmount
	})
	if err == nil {
		q.m.mu.Lock()
		q.m.CommissionWrites++
		q.m.mu.Unlock()
	}
	return err
}

func (q *memQueries) UpdateOrderLineVendor(_ context.Context, arg dbgen.UpdateOrderLineVendorParams) (dbgen.SaleOrderLine, error) {
	return q.updateLine(arg.ID, func(l *dbgen.SaleOrderLine) { l.VendorReference = arg.VendorReference })
}

func (q *memQueries) SetOrderLinePaymentStatus(_ context.Context, arg dbgen.SetOrderLinePaymentStatusParams) (dbgen.SaleOrderLine, error) {
	return q.updateLine(arg.ID, func(l *dbgen.SaleOrderLine) { l.PaymentStatus = arg.PaymentStatus })
}

func (q *memQueries) GetProduct(_ context.Context, id pgtype.UUID) (dbgen.Product, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	row, ok := q.m.Products[key(id)]
	if !ok {
		return dbgen.Product{}, pgx.ErrNoRows
	}
	return row, nil
}

func (q *memQueries) GetProductByName(_ context.Context, name string) (dbgen.Product, error) {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	for _, row := range q.m.Products {
		if row.Name == name {
			return row, nil
		}
	}
	return dbgen.Product{}, pgx.ErrNoRows
}
