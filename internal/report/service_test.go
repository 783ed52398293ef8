package report

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	dbgen "github.com/noah-isme/sales-commission/internal/db/gen"
)

type stubQueries struct {
	rows      []dbgen.ListCommissionReportRowsRow
	lastList  dbgen.ListCommissionReportRowsParams
	listCalls int
	err       error
}

func (s *stubQueries) matches(status, vendor pgtype.Text, r dbgen.ListCommissionReportRowsRow) bool {
	if status.Valid && r.PaymentStatus != status.String {
		return false
	}
	if vendor.Valid && r.VendorReference.String != vendor.String {
		return false
	}
	return true
}

func (s *stubQueries) CountCommissionReportRows(_ context.Context, arg dbgen.CountCommissionReportRowsParams) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var n int64
	for _, r := range s.rows {
		if s.matches(arg.PaymentStatus, arg.VendorReference, r) {
			n++
		}
	}
	return n, nil
}

func (s *stubQueries) ListCommissionReportRows(_ context.Context, arg dbgen.ListCommissionReportRowsParams) ([]dbgen.ListCommissionReportRowsRow, error) {
	s.listCalls++
	s.lastList = arg
	if s.err != nil {
		return nil, s.err
	}
	var filtered []dbgen.ListCommissionReportRowsRow
	for _, r := range s.rows {
		if s.matches(arg.PaymentStatus, arg.VendorReference, r) {
			filtered = append(filtered, r)
		}
	}
	start := min(int(arg.Offset), len(filtered))
	end := min(start+int(arg.Limit), len(filtered))
	return filtered[start:end], nil
}

func reportRow(order, vendor, status string, subtotal, commission float64) dbgen.ListCommissionReportRowsRow {
	return dbgen.ListCommissionReportRowsRow{
		LineID:           pgtype.UUID{Bytes: uuid.New(), Valid: true},
		OrderID:          pgtype.UUID{Bytes: uuid.New(), Valid: true},
		OrderName:        order,
		CustomerName:     "Acme",
		OrderState:       "sale",
		VendorReference:  pgtype.Text{String: vendor, Valid: vendor != ""},
		ProductName:      "CPU vCore",
		Quantity:         1,
		UnitCost:         pgtype.Float8{Float64: subtotal / 2, Valid: true},
		UnitPrice:        subtotal,
		LineSubtotal:     subtotal,
		MarkupPercentage: 100,
		MarkupAmount:     subtotal / 2,
		CommissionFactor: 0.01,
		CommissionAmount: commission,
		PaymentStatus:    status,
	}
}

func fixture() *stubQueries {
	return &stubQueries{rows: []dbgen.ListCommissionReportRowsRow{
		reportRow("S0001", "alice", "pending", 1000, 10),
		reportRow("S0001", "bob", "paid", 400, 4),
		reportRow("S0002", "alice", "paid", 2000, 20),
	}}
}

func TestListFiltersAndTotals(t *testing.T) {
	q := fixture()
	svc := NewService(ServiceConfig{Queries: q, DefaultLimit: 10, MaxLimit: 100})

	page, err := svc.List(context.Background(), Filter{VendorID: " alice "})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	require.Len(t, page.Rows, 2)
	require.Equal(t, 3000.0, page.Totals.LineSubtotal)
	require.Equal(t, 30.0, page.Totals.CommissionAmount)
	require.Equal(t, 10, page.Limit)
	require.Equal(t, "alice", q.lastList.VendorReference.String)
	require.False(t, q.lastList.PaymentStatus.Valid)

	page, err = svc.List(context.Background(), Filter{PaymentStatus: "PAID"})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	for _, r := range page.Rows {
		require.Equal(t, "paid", r.PaymentStatus)
		require.NotNil(t, r.UnitCost)
	}
}

func TestListClampsLimitAndRejectsStatus(t *testing.T) {
	q := fixture()
	svc := NewService(ServiceConfig{Queries: q, DefaultLimit: 2, MaxLimit: 2})

	page, err := svc.List(context.Background(), Filter{Limit: 50, Offset: -3})
	require.NoError(t, err)
	require.Equal(t, 2, page.Limit)
	require.Equal(t, 0, page.Offset)
	require.Len(t, page.Rows, 2)
	require.EqualValues(t, 3, page.Total)

	_, err = svc.List(context.Background(), Filter{PaymentStatus: "refunded"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "payment_status")
}

func TestAllPagesThroughEveryRow(t *testing.T) {
	q := fixture()
	svc := NewService(ServiceConfig{Queries: q, DefaultLimit: 1, MaxLimit: 1})

	rows, err := svc.All(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, 4, q.listCalls)
}

func TestExportXLSX(t *testing.T) {
	svc := NewService(ServiceConfig{Queries: fixture()})

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(context.Background(), Filter{}, &buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	header, err := book.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	require.Equal(t, "Order", header)

	order, err := book.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	require.Equal(t, "S0001", order)

	label, err := book.GetCellValue(sheetName, "A5")
	require.NoError(t, err)
	require.Equal(t, "Total", label)
	commission, err := book.GetCellValue(sheetName, "M5")
	require.NoError(t, err)
	require.Equal(t, "34", commission)
}

func TestExportPropagatesQueryError(t *testing.T) {
	svc := NewService(ServiceConfig{Queries: &stubQueries{err: errors.New("boom")}})
	var buf bytes.Buffer
	require.Error(t, svc.ExportXLSX(context.Background(), Filter{}, &buf))
	require.Zero(t, buf.Len())
}

func TestHandlers(t *testing.T) {
	svc := NewService(ServiceConfig{Queries: fixture(), DefaultLimit: 2, MaxLimit: 10})
	r := chi.NewRouter()
	NewHandler(HandlerConfig{Service: svc, Logger: zerolog.Nop(), DefaultLimit: 2, MaxLimit: 10}).Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/commissions?page=2", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"total_items":3`)
	require.Contains(t, rec.Body.String(), `"order_name":"S0002"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/commissions?payment_status=void", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/commissions.xlsx?vendor_id=bob", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=")
	require.NotZero(t, rec.Body.Len())

	rec = httptest.NewRecorder()
	NewHandler(HandlerConfig{}).List(rec, httptest.NewRequest(http.MethodGet, "/reports/commissions", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
