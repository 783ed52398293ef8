//go:build property
// +build property

package commission_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/noah-isme/sales-commission/internal/commission"
)

func tableFrom(markups []int) commission.Table {
	entries := make([]commission.Entry, 0, len(markups))
	for i, m := range markups {
		entries = append(entries, commission.Entry{
			MarkupPercentage: m,
			Factor:           float64(i%10+1) / 100,
			Active:           true,
		})
	}
	return commission.NewTable(entries)
}

func TestResolveBoundsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("resolve clamps outside the table and zeroes gaps", prop.ForAll(
		func(markups []int, p int) bool {
			tbl := tableFrom(markups)
			entries := tbl.Entries()
			if len(entries) == 0 {
				return true
			}
			lo, hi := entries[0], entries[len(entries)-1]
			res := tbl.Resolve(float64(p))
			switch {
			case p < lo.MarkupPercentage:
				return res.Factor == lo.Factor && res.Outcome == commission.OutcomeBelowMin
			case p > hi.MarkupPercentage:
				return res.Factor == hi.Factor && res.Outcome == commission.OutcomeAboveMax
			}
			for _, e := range entries {
				if e.MarkupPercentage == p {
					return res.Factor == e.Factor && res.Outcome == commission.OutcomeExact
				}
			}
			return res.Factor == 0 && res.Outcome == commission.OutcomeGap
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
		gen.IntRange(-200, 1200),
	))

	properties.TestingRun(t)
}

func TestEmptyTableProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("empty table always resolves to zero", prop.ForAll(
		func(p float64) bool {
			return commission.NewTable(nil).Resolve(p).Factor == 0
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

func TestRoundingBucketProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("fractional inputs resolve like their rounded bucket", prop.ForAll(
		func(markups []int, base int, frac float64) bool {
			tbl := tableFrom(markups)
			p := float64(base) + frac
			return tbl.Resolve(p) == tbl.Resolve(float64(commission.RoundPercent(p)))
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
		gen.IntRange(-50, 1050),
		gen.Float64Range(-0.49, 0.49),
	))

	properties.TestingRun(t)
}

func TestRecomputeIdempotenceProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("recompute is a pure function of its inputs", prop.ForAll(
		func(prices, costs []float64, untaxed float64) bool {
			tbl := tableFrom([]int{5, 10, 20, 40})
			lines := make([]commission.LineInput, 0, len(prices))
			for i, price := range prices {
				in := commission.LineInput{UnitPrice: price, Quantity: float64(i%3 + 1)}
				if i < len(costs) {
					c := costs[i]
					in.UnitCost = &c
				}
				lines = append(lines, in)
			}
			f1, t1 := commission.Recompute(lines, untaxed, tbl)
			f2, t2 := commission.Recompute(lines, untaxed, tbl)
			if t1 != t2 || len(f1) != len(f2) {
				return false
			}
			for i := range f1 {
				if f1[i] != f2[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(0, 10_000)),
		gen.SliceOf(gen.Float64Range(0, 10_000)),
		gen.Float64Range(0, 100_000),
	))

	properties.TestingRun(t)
}
