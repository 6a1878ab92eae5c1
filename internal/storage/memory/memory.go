package memory

import (
	"context"
	"sync"

	"expenses/internal/core"
)

// Store is the in-memory record list. It also satisfies ports.Repository,
// in which case Save and Load work against a snapshot kept in process.
type Store struct {
	mu       sync.Mutex
	items    []core.Expense
	snapshot []core.Expense
}

func New(items ...core.Expense) *Store {
	s := &Store{}
	s.Replace(items)
	return s
}

// Add assigns the next id to e, validates it and appends it.
func (s *Store) Add(e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = core.NextID(s.items)
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.items = append(s.items, e)
	return e, nil
}

// All returns a copy of the records in insertion order.
func (s *Store) All() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...)
}

// Replace discards the current records in favour of items.
func (s *Store) Replace(items []core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Expense(nil), items...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// NextID is the id the next Add will assign.
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.NextID(s.items)
}

// Load implements ports.ExpenseLoader.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.snapshot...), nil
}

// Save implements ports.ExpenseSaver.
func (s *Store) Save(_ context.Context, items []core.Expense) error {
	rows := append([]core.Expense(nil), items...)
	core.SortByDate(rows)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = rows
	return nil
}

func (s *Store) Location() string {
	return "memory"
}
