package ports

import (
	"context"

	"expenses/internal/core"
)

// Ports for persistence adapters.
type (
	ExpenseLoader interface {
		// Load returns every persisted expense. Malformed records are skipped.
		Load(ctx context.Context) ([]core.Expense, error)
	}

	ExpenseSaver interface {
		// Save replaces the persisted set with items.
		Save(ctx context.Context, items []core.Expense) error
	}

	// Repository is a whole-set store: load everything, save everything.
	Repository interface {
		ExpenseLoader
		ExpenseSaver
		// Location names where the data lives, for user-facing messages.
		Location() string
	}
)
