package commission

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	decMaxPercent   = decimal.NewFromInt(math.MaxInt32)
	decMinPercent   = decimal.NewFromInt(math.MinInt32)
	decOne          = decimal.NewFromInt(1)
	decMinusHundred = decimal.NewFromInt(-100)
)

// RoundPercent rounds v to the nearest integer, halves away from zero.
// Non-finite input rounds to 0.
func RoundPercent(v float64) int {
	if !finite(v) {
		return 0
	}
	return saturate(decimal.NewFromFloat(v).Round(0))
}

// MarkupPercentage returns round(((cost / price) - 1) * -100). A cost below the
// price yields a positive markup. Zero price or cost yields 0.
func MarkupPercentage(price, cost float64) int {
	if price == 0 || cost == 0 || !finite(price) || !finite(cost) {
		return 0
	}
	p := decimal.NewFromFloat(price)
	c := decimal.NewFromFloat(cost)
	return saturate(c.Div(p).Sub(decOne).Mul(decMinusHundred).Round(0))
}

// saturate clamps an integral percentage to the int32 range stored on
// lines and orders.
func saturate(d decimal.Decimal) int {
	switch {
	case d.GreaterThan(decMaxPercent):
		return math.MaxInt32
	case d.LessThan(decMinPercent):
		return math.MinInt32
	}
	return int(d.IntPart())
}

func mul(a, b float64) float64 {
	if !finite(a) || !finite(b) {
		return 0
	}
	return decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).InexactFloat64()
}

func sub(a, b float64) float64 {
	if !finite(a) || !finite(b) {
		return 0
	}
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

func dec(v float64) decimal.Decimal {
	if !finite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
