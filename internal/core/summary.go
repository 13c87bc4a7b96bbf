package core

import (
	"slices"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// CategoryTotals maps a folded category name to its summed amount.
// Iteration order is unspecified; use Sorted for stable output.
type CategoryTotals map[string]Money

// Sorted returns the totals ordered by category name.
func (ct CategoryTotals) Sorted() []CategoryAmount {
	names := make([]string, 0, len(ct))
	for name := range ct {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]CategoryAmount, 0, len(names))
	for _, name := range names {
		out = append(out, CategoryAmount{Name: name, Amount: ct[name]})
	}
	return out
}

// Summary is the overview rendered by the summary menu entry.
type Summary struct {
	Total      Money
	ByCategory []CategoryAmount
}
