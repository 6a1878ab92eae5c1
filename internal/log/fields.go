package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldBackend     = "backend"
	FieldLocation    = "location"
	FieldCount       = "count"
	FieldSkipped     = "skipped"
	FieldChoice      = "choice"
	FieldExpenseID   = "expense_id"
	FieldDate        = "date"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldRangeStart  = "range_start"
	FieldRangeEnd    = "range_end"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentConsole = "console"
	ComponentExpense = "expense"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
	ComponentConfig  = "config"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpList     = "list"
	OpSearch   = "search"
	OpSummary  = "summary"
	OpLoad     = "load"
	OpSave     = "save"
	OpMigrate  = "migrate"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeIO            = "io_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category
func (f LogFields) WithErrorType(kind string) LogFields {
	f[FieldErrorType] = kind
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(id int64, date string, amountCents int64, category string) LogFields {
	f[FieldExpenseID] = id
	f[FieldDate] = date
	f[FieldAmountCents] = amountCents
	f[FieldCategory] = category
	return f
}

// WithRange adds date range bounds; empty bounds are omitted
func (f LogFields) WithRange(start, end string) LogFields {
	if start != "" {
		f[FieldRangeStart] = start
	}
	if end != "" {
		f[FieldRangeEnd] = end
	}
	return f
}

// WithStorage adds backend and location fields
func (f LogFields) WithStorage(backend, location string) LogFields {
	f[FieldBackend] = backend
	f[FieldLocation] = location
	return f
}

// WithCount adds a record count
func (f LogFields) WithCount(n int) LogFields {
	f[FieldCount] = n
	return f
}

// ToSlice converts LogFields to a slice for slog. The component key is
// left out because Logger adds its own.
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		if k == FieldComponent {
			continue
		}
		slice = append(slice, k, v)
	}
	return slice
}
