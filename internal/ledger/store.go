// Package ledger holds the in-memory expense ledger and its persistence.
package ledger

import (
	"errors"
	"io"
	"io/fs"
	"sync"

	"registro/internal/core"
	"registro/internal/log"
	"registro/internal/storage"
)

// Store owns an insertion-ordered sequence of expenses. The mutex makes
// every public method a critical section; results never alias the
// internal slice.
type Store struct {
	mu     sync.Mutex
	items  []core.Expense
	logger *log.Logger
	// fileLog reports row-level and file-level detail from storage.
	fileLog *log.Logger
}

var _ Ledger = (*Store)(nil)

// New returns an empty store. A nil logger discards output.
func New(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{
		logger:  logger.WithComponent(log.ComponentLedger),
		fileLog: logger.WithComponent(log.ComponentStorage),
	}
}

// NewFromFile returns a store seeded from path when the file exists. A
// missing file yields an empty store; any other failure is returned.
func NewFromFile(path string, logger *log.Logger) (*Store, error) {
	s := New(logger)
	err := s.ImportFrom(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Add appends e and returns its 1-based position.
func (s *Store) Add(e core.Expense) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	s.logger.Debug("expense added", log.NewFields().WithOperation(log.OpAdd).WithExpense(e).ToSlice()...)
	return len(s.items)
}

// Len returns the number of stored expenses.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// All returns a copy of every expense in insertion order.
func (s *Store) All() []core.Expense {
	return s.filter(log.NewFields().WithOperation(log.OpList), func(core.Expense) bool { return true })
}

// FilterByDateRange returns expenses dated from..to inclusive. A reversed
// range matches nothing.
func (s *Store) FilterByDateRange(from, to core.Date) []core.Expense {
	q := from.String() + ".." + to.String()
	return s.filter(log.NewFields().WithOperation(log.OpFilter).WithQuery(q), func(e core.Expense) bool {
		return e.Date.Between(from, to)
	})
}

// FilterByCategory matches categories equal to category ignoring ASCII case.
func (s *Store) FilterByCategory(category string) []core.Expense {
	return s.filter(log.NewFields().WithOperation(log.OpFilter).WithQuery(category), func(e core.Expense) bool {
		return core.EqualFold(e.Category, category)
	})
}

// Search matches expenses whose category or description contains text,
// ignoring ASCII case.
func (s *Store) Search(text string) []core.Expense {
	return s.filter(log.NewFields().WithOperation(log.OpSearch).WithQuery(text), func(e core.Expense) bool {
		return core.ContainsFold(e.Category, text) || core.ContainsFold(e.Description, text)
	})
}

func (s *Store) filter(fields log.LogFields, keep func(core.Expense) bool) []core.Expense {
	s.mu.Lock()
	out := make([]core.Expense, 0, len(s.items))
	for _, e := range s.items {
		if keep(e) {
			out = append(out, e)
		}
	}
	s.mu.Unlock()
	s.logger.Debug("query answered", fields.WithCount(len(out)).ToSlice()...)
	return out
}

// Total sums the amounts of expenses.
func (s *Store) Total(expenses []core.Expense) core.Money {
	return Total(expenses)
}

// TotalsByCategory sums amounts per ASCII-lowercased category.
func (s *Store) TotalsByCategory(expenses []core.Expense) core.CategoryTotals {
	return TotalsByCategory(expenses)
}

// Summarize returns the overall total and the per-category totals of
// expenses, categories in ascending order.
func (s *Store) Summarize(expenses []core.Expense) core.Summary {
	sum := core.Summary{
		Total:      Total(expenses),
		ByCategory: TotalsByCategory(expenses).Sorted(),
	}
	s.logger.Debug("summary computed", log.NewFields().WithOperation(log.OpSummary).WithCount(len(sum.ByCategory)).ToSlice()...)
	return sum
}

// Total sums the amounts of expenses; the sum of nothing is zero.
func Total(expenses []core.Expense) core.Money {
	sum := core.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// TotalsByCategory groups by lowercased category, so "Food" and "food" merge.
func TotalsByCategory(expenses []core.Expense) core.CategoryTotals {
	out := make(core.CategoryTotals)
	for _, e := range expenses {
		key := core.FoldASCII(e.Category)
		out[key] = out[key].Add(e.Amount)
	}
	return out
}

// Export writes the ledger file format to w.
func (s *Store) Export(w io.Writer) error {
	return storage.Encode(w, s.All())
}

// ExportTo replaces the file at path with the current ledger. The ledger
// itself is never modified.
func (s *Store) ExportTo(path string) error {
	logger := s.logger.With(log.FieldPath, path)
	items := s.All()
	if err := storage.WriteFile(path, items, s.fileLog); err != nil {
		logger.Error("export failed", log.NewFields().WithOperation(log.OpExport).WithError(err).ToSlice()...)
		return err
	}
	logger.Info("ledger exported", log.NewFields().WithOperation(log.OpExport).WithCount(len(items)).ToSlice()...)
	return nil
}

// Import replaces the ledger with the rows decoded from r. On a read error
// the ledger is left untouched.
func (s *Store) Import(r io.Reader) error {
	res, err := storage.Decode(r, s.fileLog)
	if err != nil {
		return err
	}
	s.replace(res)
	return nil
}

// ImportFrom replaces the ledger with the contents of the file at path.
// Unparseable rows are skipped. If the file cannot be opened or read the
// ledger is left untouched.
func (s *Store) ImportFrom(path string) error {
	logger := s.logger.With(log.FieldPath, path)
	res, err := storage.ReadFile(path, s.fileLog.With(log.FieldPath, path))
	if err != nil {
		logger.Warn("import failed", log.NewFields().WithOperation(log.OpImport).WithError(err).ToSlice()...)
		return err
	}
	s.replace(res)
	logger.Info("ledger imported",
		append(log.NewFields().WithOperation(log.OpImport).WithCount(len(res.Expenses)).ToSlice(),
			log.FieldSkipped, res.Skipped)...)
	return nil
}

func (s *Store) replace(res storage.DecodeResult) {
	items := res.Expenses
	if items == nil {
		items = []core.Expense{}
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}
