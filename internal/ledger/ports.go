package ledger

import "registro/internal/core"

// Ports consumed by the console collaborator.
type (
	ExpenseWriter interface {
		Add(e core.Expense) (position int)
	}

	// ExpenseLister answers the read-only queries. Every result is a fresh
	// slice in insertion order.
	ExpenseLister interface {
		All() []core.Expense
		FilterByDateRange(from, to core.Date) []core.Expense
		FilterByCategory(category string) []core.Expense
		Search(text string) []core.Expense
	}

	// Summarizer aggregates a previously obtained listing.
	Summarizer interface {
		Total(expenses []core.Expense) core.Money
		TotalsByCategory(expenses []core.Expense) core.CategoryTotals
		Summarize(expenses []core.Expense) core.Summary
	}

	// Persister replaces or saves the whole ledger.
	Persister interface {
		ExportTo(path string) error
		ImportFrom(path string) error
	}

	Ledger interface {
		ExpenseWriter
		ExpenseLister
		Summarizer
		Persister
	}
)
