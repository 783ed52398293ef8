package commission

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// Entry maps a rounded markup percentage to a commission factor.
type Entry struct {
	ID               uuid.UUID `json:"id"`
	MarkupPercentage int       `json:"markup_percentage" validate:"gte=0,lte=1000"`
	Factor           float64   `json:"commission_factor" validate:"gte=0,lte=1"`
	Active           bool      `json:"active"`
}

// DisplayName renders the entry the way administrators see it in listings.
func (e Entry) DisplayName() string {
	return fmt.Sprintf("Markup %d%% → Factor %s", e.MarkupPercentage, strconv.FormatFloat(e.Factor, 'f', -1, 64))
}

// Outcome describes which branch of the lookup produced a factor.
type Outcome string

const (
	OutcomeExact    Outcome = "exact"
	OutcomeBelowMin Outcome = "below_min"
	OutcomeAboveMax Outcome = "above_max"
	OutcomeGap      Outcome = "gap"
	OutcomeEmpty    Outcome = "empty"
	// OutcomeSkipped marks lines whose markup was 0 so no lookup happened.
	OutcomeSkipped Outcome = "skipped"
)

// Resolution is the result of a factor lookup.
type Resolution struct {
	Markup  int     `json:"markup_percentage"`
	Factor  float64 `json:"commission_factor"`
	Outcome Outcome `json:"outcome"`
}

// Resolver resolves a markup percentage to a commission factor.
type Resolver interface {
	Resolve(markup float64) Resolution
}

// Table is an immutable snapshot of the active factor entries ordered by
// ascending markup percentage.
type Table struct {
	entries []Entry
}

// NewTable keeps only active entries and sorts them by markup percentage.
// When two active entries share a percentage the first one wins.
func NewTable(entries []Entry) Table {
	active := make([]Entry, 0, len(entries))
	seen := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		if !e.Active {
			continue
		}
		if _, dup := seen[e.MarkupPercentage]; dup {
			continue
		}
		seen[e.MarkupPercentage] = struct{}{}
		active = append(active, e)
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].MarkupPercentage < active[j].MarkupPercentage
	})
	return Table{entries: active}
}

// Entries returns a copy of the active entries.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports the number of active entries.
func (t Table) Len() int { return len(t.entries) }

// Resolve rounds markup and looks it up: exact match first, then clamping to
// the smallest or largest breakpoint. A percentage strictly between two
// breakpoints without its own entry resolves to 0.
func (t Table) Resolve(markup float64) Resolution {
	rounded := RoundPercent(markup)
	if len(t.entries) == 0 {
		return Resolution{Markup: rounded, Outcome: OutcomeEmpty}
	}
	idx := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].MarkupPercentage >= rounded
	})
	if idx < len(t.entries) && t.entries[idx].MarkupPercentage == rounded {
		return Resolution{Markup: rounded, Factor: t.entries[idx].Factor, Outcome: OutcomeExact}
	}
	lowest := t.entries[0]
	highest := t.entries[len(t.entries)-1]
	switch {
	case rounded < lowest.MarkupPercentage:
		return Resolution{Markup: rounded, Factor: lowest.Factor, Outcome: OutcomeBelowMin}
	case rounded > highest.MarkupPercentage:
		return Resolution{Markup: rounded, Factor: highest.Factor, Outcome: OutcomeAboveMax}
	}
	return Resolution{Markup: rounded, Outcome: OutcomeGap}
}

// Factor is shorthand for Resolve(markup).Factor.
func (t Table) Factor(markup float64) float64 {
	return t.Resolve(markup).Factor
}
