package commission

import "github.com/shopspring/decimal"

// OrderLine is the per-line view the aggregator needs.
type OrderLine struct {
	UnitCost         *float64
	Quantity         float64
	Subtotal         float64
	CommissionFactor float64
}

// Totals are the order-level derived fields.
type Totals struct {
	TotalCost             float64 `json:"total_cost"`
	TotalMarkupAmount     float64 `json:"total_markup_amount"`
	TotalMarkupPercentage int     `json:"total_markup_percentage"`
	TotalCommissionFactor float64 `json:"total_commission_factor"`
	TotalCommissionAmount float64 `json:"total_commission_amount"`
}

// ComputeOrderTotals aggregates the complete line collection of an order.
// amountUntaxed is the host's untaxed order total and is not recomputed here.
func ComputeOrderTotals(lines []OrderLine, amountUntaxed float64) Totals {
	cost := decimal.Zero
	weighted := decimal.Zero
	weights := decimal.Zero
	for _, line := range lines {
		if line.UnitCost != nil && *line.UnitCost != 0 && line.Quantity != 0 {
			cost = cost.Add(dec(*line.UnitCost).Mul(dec(line.Quantity)))
		}
		if line.Subtotal != 0 && line.CommissionFactor != 0 {
			sub := dec(line.Subtotal)
			weighted = weighted.Add(sub.Mul(dec(line.CommissionFactor)))
			weights = weights.Add(sub)
		}
	}

	totalCost := cost.InexactFloat64()
	out := Totals{
		TotalCost:             totalCost,
		TotalMarkupAmount:     sub(amountUntaxed, totalCost),
		TotalMarkupPercentage: MarkupPercentage(amountUntaxed, totalCost),
	}
	if amountUntaxed != 0 && len(lines) > 0 && !weights.IsZero() {
		out.TotalCommissionFactor = weighted.Div(weights).InexactFloat64()
	}
	if amountUntaxed != 0 && out.TotalCommissionFactor != 0 {
		out.TotalCommissionAmount = mul(amountUntaxed, out.TotalCommissionFactor)
	}
	return out
}

// Recompute derives every line and the order totals in one pass. The result
// depends only on its arguments.
func Recompute(lines []LineInput, amountUntaxed float64, r Resolver) ([]LineFigures, Totals) {
	figures := make([]LineFigures, len(lines))
	agg := make([]OrderLine, len(lines))
	for i, in := range lines {
		figures[i] = ComputeLine(in, r)
		agg[i] = OrderLine{
			UnitCost:         in.UnitCost,
			Quantity:         in.Quantity,
			Subtotal:         in.LineSubtotal(),
			CommissionFactor: figures[i].CommissionFactor,
		}
	}
	return figures, ComputeOrderTotals(agg, amountUntaxed)
}
