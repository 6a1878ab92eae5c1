package log

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts the logger stored by NewContext
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger
	}
	// Return default logger if not found
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides domain-level logging helpers
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogExpenseAdded logs a newly recorded expense
func (sl *StructuredLogger) LogExpenseAdded(ctx context.Context, id int64, date string, amountCents int64, category string) {
	fields := NewFields().
		WithExpense(id, date, amountCents, category).
		WithOperation(OpAdd)

	sl.logger.WithComponent(ComponentExpense).InfoContext(ctx, "Expense added", fields.ToSlice()...)
}

// LogPersisted logs a completed load or save
func (sl *StructuredLogger) LogPersisted(ctx context.Context, op, location string, count int) {
	fields := NewFields().
		WithOperation(op).
		WithCount(count)
	fields[FieldLocation] = location

	msg := "Expenses saved"
	if op == OpLoad {
		msg = "Expenses loaded"
	}
	sl.logger.WithComponent(ComponentStorage).InfoContext(ctx, msg, fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)

	sl.logger.WithComponent(component).ErrorContext(ctx, msg, allFields.ToSlice()...)
}
