package log

import "registro/internal/core"

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldPath        = "path"
	FieldCount       = "count"
	FieldSkipped     = "skipped"
	FieldDate        = "date"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldQuery       = "query"
	FieldLine        = "line"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentMenu    = "menu"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpList     = "list"
	OpFilter   = "filter"
	OpSearch   = "search"
	OpSummary  = "summary"
	OpExport   = "export"
	OpImport   = "import"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithPath adds the ledger file path
func (f LogFields) WithPath(path string) LogFields {
	f[FieldPath] = path
	return f
}

// WithCount adds a record count
func (f LogFields) WithCount(n int) LogFields {
	f[FieldCount] = n
	return f
}

// WithQuery adds the filter or search argument
func (f LogFields) WithQuery(q string) LogFields {
	f[FieldQuery] = q
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(e core.Expense) LogFields {
	f[FieldDate] = e.Date.String()
	f[FieldAmount] = e.Amount.String()
	f[FieldCategory] = e.Category
	f[FieldDescription] = e.Description
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
