package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/sales-commission/internal/common"
	dbgen "github.com/noah-isme/sales-commission/internal/db/gen"
)

type queryProvider interface {
	CountCommissionReportRows(ctx context.Context, arg dbgen.CountCommissionReportRowsParams) (int64, error)
	ListCommissionReportRows(ctx context.Context, arg dbgen.ListCommissionReportRowsParams) ([]dbgen.ListCommissionReportRowsRow, error)
}

// Filter narrows the commission report. Empty strings mean no filter.
type Filter struct {
	PaymentStatus string
	VendorID      string
	Limit         int
	Offset        int
}

// Row is one commissionable line of a confirmed order.
type Row struct {
	LineID           uuid.UUID `json:"line_id"`
	OrderID          uuid.UUID `json:"order_id"`
	OrderName        string    `json:"order_name"`
	CustomerName     string    `json:"customer_name"`
	OrderState       string    `json:"order_state"`
	VendorReference  string    `json:"vendor_reference"`
	ProductName      string    `json:"product_name"`
	Quantity         float64   `json:"quantity"`
	UnitCost         *float64  `json:"unit_cost"`
	UnitPrice        float64   `json:"unit_price"`
	LineSubtotal     float64   `json:"line_subtotal"`
	MarkupPercentage int       `json:"markup_percentage"`
	MarkupAmount     float64   `json:"markup_amount"`
	CommissionFactor float64   `json:"commission_factor"`
	CommissionAmount float64   `json:"commission_amount"`
	PaymentStatus    string    `json:"commission_payment_status"`
}

// Totals sums the money columns of a set of rows.
type Totals struct {
	LineSubtotal     float64 `json:"line_subtotal"`
	MarkupAmount     float64 `json:"markup_amount"`
	CommissionAmount float64 `json:"commission_amount"`
}

// Page is one page of the report.
type Page struct {
	Rows   []Row  `json:"rows"`
	Totals Totals `json:"totals"`
	Total  int64  `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// Service reads commission lines of confirmed orders.
type Service struct {
	queries      queryProvider
	defaultLimit int
	maxLimit     int
	exportLimit  int
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries      queryProvider
	DefaultLimit int
	MaxLimit     int
	// ExportLimit caps the rows written to a spreadsheet.
	ExportLimit int
}

// NewService constructs a report service.
func NewService(cfg ServiceConfig) *Service {
	svc := &Service{queries: cfg.Queries, defaultLimit: cfg.DefaultLimit, maxLimit: cfg.MaxLimit, exportLimit: cfg.ExportLimit}
	if svc.maxLimit <= 0 {
		svc.maxLimit = 500
	}
	if svc.defaultLimit <= 0 || svc.defaultLimit > svc.maxLimit {
		svc.defaultLimit = min(50, svc.maxLimit)
	}
	if svc.exportLimit <= 0 {
		svc.exportLimit = 10000
	}
	return svc
}

// List returns one page of report rows with the page totals.
func (s *Service) List(ctx context.Context, f Filter) (Page, error) {
	f, err := s.normalize(f)
	if err != nil {
		return Page{}, err
	}
	total, err := s.queries.CountCommissionReportRows(ctx, dbgen.CountCommissionReportRowsParams{
		PaymentStatus:   nullText(f.PaymentStatus),
		VendorReference: nullText(f.VendorID),
	})
	if err != nil {
		return Page{}, fmt.Errorf("count report rows: %w", err)
	}
	rows, err := s.fetch(ctx, f)
	if err != nil {
		return Page{}, err
	}
	return Page{Rows: rows, Totals: sum(rows), Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// All returns every matching row up to the export limit, ignoring Limit and Offset.
func (s *Service) All(ctx context.Context, f Filter) ([]Row, error) {
	f, err := s.normalize(f)
	if err != nil {
		return nil, err
	}
	out := []Row{}
	f.Offset = 0
	for len(out) < s.exportLimit {
		f.Limit = min(s.maxLimit, s.exportLimit-len(out))
		rows, err := s.fetch(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
		if len(rows) < f.Limit {
			break
		}
		f.Offset += len(rows)
	}
	return out, nil
}

func (s *Service) fetch(ctx context.Context, f Filter) ([]Row, error) {
	rows, err := s.queries.ListCommissionReportRows(ctx, dbgen.ListCommissionReportRowsParams{
		PaymentStatus:   nullText(f.PaymentStatus),
		VendorReference: nullText(f.VendorID),
		Limit:           int32(f.Limit),
		Offset:          int32(f.Offset),
	})
	if err != nil {
		return nil, fmt.Errorf("list report rows: %w", err)
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRow(r))
	}
	return out, nil
}

func (s *Service) normalize(f Filter) (Filter, error) {
	f.PaymentStatus = strings.ToLower(strings.TrimSpace(f.PaymentStatus))
	f.VendorID = strings.TrimSpace(f.VendorID)
	switch f.PaymentStatus {
	case "", "pending", "paid":
	default:
		return f, common.BadRequest("payment_status must be pending or paid", nil)
	}
	if f.Limit <= 0 {
		f.Limit = s.defaultLimit
	}
	if f.Limit > s.maxLimit {
		f.Limit = s.maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f, nil
}

func sum(rows []Row) Totals {
	var subtotal, markup, commission decimal.Decimal
	for _, r := range rows {
		subtotal = subtotal.Add(decimal.NewFromFloat(r.LineSubtotal))
		markup = markup.Add(decimal.NewFromFloat(r.MarkupAmount))
		commission = commission.Add(decimal.NewFromFloat(r.CommissionAmount))
	}
	return Totals{
		LineSubtotal:     subtotal.InexactFloat64(),
		MarkupAmount:     markup.InexactFloat64(),
		CommissionAmount: commission.InexactFloat64(),
	}
}

func nullText(v string) pgtype.Text {
	if v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v, Valid: true}
}

func toRow(r dbgen.ListCommissionReportRowsRow) Row {
	out := Row{
		LineID:           common.FromPgUUID(r.LineID),
		OrderID:          common.FromPgUUID(r.OrderID),
		OrderName:        r.OrderName,
		CustomerName:     r.CustomerName,
		OrderState:       r.OrderState,
		VendorReference:  r.VendorReference.String,
		ProductName:      r.ProductName,
		Quantity:         r.Quantity,
		UnitPrice:        r.UnitPrice,
		LineSubtotal:     r.LineSubtotal,
		MarkupPercentage: int(r.MarkupPercentage),
		MarkupAmount:     r.MarkupAmount,
		CommissionFactor: r.CommissionFactor,
		CommissionAmount: r.CommissionAmount,
		PaymentStatus:    r.PaymentStatus,
	}
	if r.UnitCost.Valid {
		cost := r.UnitCost.Float64
		out.UnitCost = &cost
	}
	return out
}
