package commission

// LineInput carries the unit economics of one order line.
type LineInput struct {
	UnitPrice float64
	UnitCost  *float64
	Quantity  float64
	// Subtotal is the host-computed line subtotal. Nil means UnitPrice * Quantity.
	Subtotal *float64
}

// LineSubtotal returns the host subtotal when present, otherwise price * quantity.
func (in LineInput) LineSubtotal() float64 {
	if in.Subtotal != nil {
		return *in.Subtotal
	}
	return mul(in.UnitPrice, in.Quantity)
}

func (in LineInput) cost() float64 {
	if in.UnitCost == nil {
		return 0
	}
	return *in.UnitCost
}

// LineFigures are the derived markup and commission fields of a line.
type LineFigures struct {
	MarkupPercentage int     `json:"markup_percentage"`
	MarkupAmount     float64 `json:"markup_amount"`
	CommissionFactor float64 `json:"commission_factor"`
	CommissionAmount float64 `json:"commission_amount"`
	Lookup           Outcome `json:"lookup"`
}

// ComputeLine derives markup and commission for a line. Missing price or cost
// means no markup data and therefore no commission.
func ComputeLine(in LineInput, r Resolver) LineFigures {
	cost := in.cost()
	if in.UnitPrice == 0 || cost == 0 {
		return LineFigures{Lookup: OutcomeSkipped}
	}
	out := LineFigures{
		MarkupPercentage: MarkupPercentage(in.UnitPrice, cost),
		MarkupAmount:     sub(in.UnitPrice, cost),
		Lookup:           OutcomeSkipped,
	}
	if out.MarkupPercentage != 0 && r != nil {
		res := r.Resolve(float64(out.MarkupPercentage))
		out.CommissionFactor = res.Factor
		out.Lookup = res.Outcome
	}
	subtotal := in.LineSubtotal()
	if subtotal != 0 && out.CommissionFactor != 0 {
		out.CommissionAmount = mul(subtotal, out.CommissionFactor)
	}
	return out
}
