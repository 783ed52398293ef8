package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	dbgen "github.com/noah-isme/sales-commission/internal/db/gen"
)

// Querier is the subset of generated queries the order write path uses.
type Querier interface {
	CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.SaleOrder, error)
	GetOrder(ctx context.Context, id pgtype.UUID) (dbgen.SaleOrder, error)
	GetOrderForUpdate(ctx context.Context, id pgtype.UUID) (dbgen.SaleOrder, error)
	UpdateOrderState(ctx context.Context, arg dbgen.UpdateOrderStateParams) (dbgen.SaleOrder, error)
	UpdateOrderAmountUntaxed(ctx context.Context, arg dbgen.UpdateOrderAmountUntaxedParams) (dbgen.SaleOrder, error)
	SyncOrderAmountUntaxed(ctx context.Context, id pgtype.UUID) (dbgen.SaleOrder, error)
	UpdateOrderTotals(ctx context.Context, arg dbgen.UpdateOrderTotalsParams) error
	ListOrderIDsByStates(ctx context.Context, states []string) ([]pgtype.UUID, error)

	CreateOrderLine(ctx context.Context, arg dbgen.CreateOrderLineParams) (dbgen.SaleOrderLine, error)
	GetOrderLine(ctx context.Context, id pgtype.UUID) (dbgen.SaleOrderLine, error)
	ListOrderLines(ctx context.Context, orderID pgtype.UUID) ([]dbgen.SaleOrderLine, error)
	MaxOrderLineSequence(ctx context.Context, orderID pgtype.UUID) (int32, error)
	CountOrderSectionsWithPrefix(ctx context.Context, arg dbgen.CountOrderSectionsWithPrefixParams) (int64, error)
	UpdateOrderLineEconomics(ctx context.Context, arg dbgen.UpdateOrderLineEconomicsParams) (dbgen.SaleOrderLine, error)
	UpdateOrderLineCommission(ctx context.Context, arg dbgen.UpdateOrderLineCommissionParams) error
	UpdateOrderLineVendor(ctx context.Context, arg dbgen.UpdateOrderLineVendorParams) (dbgen.SaleOrderLine, error)
	SetOrderLinePaymentStatus(ctx context.Context, arg dbgen.SetOrderLinePaymentStatusParams) (dbgen.SaleOrderLine, error)

	GetProduct(ctx context.Context, id pgtype.UUID) (dbgen.Product, error)
	GetProductByName(ctx context.Context, name string) (dbgen.Product, error)
}

// Store hands out queries, optionally bound to a transaction.
type Store interface {
	Queries() Querier
	InTx(ctx context.Context, fn func(q Querier) error) error
}

// PgStore runs queries against a pgx pool.
type PgStore struct {
	Pool *pgxpool.Pool
	Q    *dbgen.Queries
}

// NewPgStore wraps pool with generated queries.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{Pool: pool, Q: dbgen.New(pool)}
}

// Queries returns pool-bound queries.
func (s *PgStore) Queries() Querier { return s.Q }

// InTx executes fn inside a single transaction, committing when fn succeeds.
func (s *PgStore) InTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(s.Q.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
