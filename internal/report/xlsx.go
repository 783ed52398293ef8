package report

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/sales-commission/internal/obs"
)

const sheetName = "Commissions"

var headers = []string{
	"Order", "Customer", "State", "Vendor", "Product", "Quantity", "Unit Cost", "Unit Price",
	"Subtotal", "Markup %", "Markup", "Commission Factor", "Commission", "Payment Status",
}

// ExportXLSX writes every matching row to w as a single-sheet workbook with a
// styled header and a totals row.
func (s *Service) ExportXLSX(ctx context.Context, f Filter, w io.Writer) error {
	rows, err := s.All(ctx, f)
	if err != nil {
		return err
	}
	book, err := buildWorkbook(rows)
	if err != nil {
		return err
	}
	defer book.Close()
	if _, err := book.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	obs.IncReportExport("xlsx")
	return nil
}

func buildWorkbook(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for i, r := range rows {
		var cost any
		if r.UnitCost != nil {
			cost = *r.UnitCost
		}
		values := []any{
			r.OrderName, r.CustomerName, r.OrderState, r.VendorReference, r.ProductName,
			r.Quantity, cost, r.UnitPrice, r.LineSubtotal, r.MarkupPercentage, r.MarkupAmount,
			r.CommissionFactor, r.CommissionAmount, r.PaymentStatus,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}

	totals := sum(rows)
	totalRow := len(rows) + 2
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	totalValues := []any{"Total", nil, nil, nil, nil, nil, nil, nil, totals.LineSubtotal, nil, totals.MarkupAmount, nil, totals.CommissionAmount}
	if err := f.SetSheetRow(sheetName, cell, &totalValues); err != nil {
		f.Close()
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(sheetName, totalRow, totalRow, totalStyle)
	}

	_ = f.SetColWidth(sheetName, "A", "B", 24)
	_ = f.SetColWidth(sheetName, "C", "E", 18)
	_ = f.SetColWidth(sheetName, "F", "N", 14)
	return f, nil
}
