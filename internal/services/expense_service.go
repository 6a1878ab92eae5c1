package services

import (
	"context"
	"fmt"

	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/ports"
	"expenses/internal/storage/memory"
)

// AddInput is an expense as typed by the user, before parsing.
type AddInput struct {
	Date        string
	Amount      string
	Category    string
	Description string
}

// ExpenseService orchestrates the in-memory record list and its repository
type ExpenseService struct {
	store   *memory.Store
	repo    ports.Repository
	cleanup func() error
	logger  *log.Logger
	events  *log.StructuredLogger
}

func NewExpenseService(repo ports.Repository, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.Discard()
	}
	return &ExpenseService{
		store:  memory.New(),
		repo:   repo,
		logger: logger.WithComponent(log.ComponentExpense),
		events: log.NewStructuredLogger(logger),
	}
}

// WithCleanup registers a function run by Close, typically the backend's.
func (s *ExpenseService) WithCleanup(fn func() error) *ExpenseService {
	s.cleanup = fn
	return s
}

// Add parses and validates in, then appends it with the next id.
// Fields are checked in input order so the first problem is reported.
// Category and description are stored the way they will be saved, so a
// field that is blank once cleaned is rejected.
func (s *ExpenseService) Add(ctx context.Context, in AddInput) (core.Expense, error) {
	e, err := parseInput(in)
	if err != nil {
		s.logger.DebugContext(ctx, "Rejected expense", log.NewFields().
			WithOperation(log.OpAdd).
			WithErrorType(log.ErrorTypeValidation).
			WithError(err).
			ToSlice()...)
		return core.Expense{}, err
	}

	e, err = s.store.Add(e)
	if err != nil {
		return core.Expense{}, err
	}

	s.events.LogExpenseAdded(ctx, e.ID, string(e.Date), e.Amount.Cents, e.Category)
	return e, nil
}

func parseInput(in AddInput) (core.Expense, error) {
	date, err := core.ParseDate(in.Date)
	if err != nil {
		return core.Expense{}, err
	}
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	category := core.CleanText(in.Category)
	if category == "" {
		return core.Expense{}, core.ErrEmptyCategory
	}
	description := core.CleanText(in.Description)
	if description == "" {
		return core.Expense{}, core.ErrEmptyDescription
	}
	return core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: description,
	}, nil
}

// List returns the expenses within r ordered by date then id.
func (s *ExpenseService) List(ctx context.Context, r core.DateRange) ([]core.Expense, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out := core.FilterByDate(s.store.All(), r)
	core.SortByDate(out)

	s.logger.DebugContext(ctx, "Listed expenses",
		log.NewFields().WithOperation(log.OpList).WithRange(string(r.Start), string(r.End)).WithCount(len(out)).ToSlice()...)
	return out, nil
}

// Search returns the expenses within r matching keyword, ordered by date then id.
func (s *ExpenseService) Search(ctx context.Context, keyword string, r core.DateRange) ([]core.Expense, error) {
	if keyword == "" {
		return nil, core.ErrEmptyKeyword
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out, err := core.Search(s.store.All(), keyword, r)
	if err != nil {
		return nil, err
	}
	core.SortByDate(out)

	s.logger.DebugContext(ctx, "Searched expenses",
		log.NewFields().WithOperation(log.OpSearch).WithRange(string(r.Start), string(r.End)).WithCount(len(out)).ToSlice()...)
	return out, nil
}

// Summary aggregates the expenses within r.
func (s *ExpenseService) Summary(ctx context.Context, r core.DateRange) (core.Summary, error) {
	if err := r.Validate(); err != nil {
		return core.Summary{}, err
	}
	sum := core.Summarize(core.FilterByDate(s.store.All(), r))

	s.logger.DebugContext(ctx, "Summarized expenses",
		log.NewFields().WithOperation(log.OpSummary).WithRange(string(r.Start), string(r.End)).WithCount(sum.Count).ToSlice()...)
	return sum, nil
}

// Save writes every record to the repository.
func (s *ExpenseService) Save(ctx context.Context) error {
	items := s.store.All()
	if err := s.repo.Save(ctx, items); err != nil {
		s.events.LogError(ctx, "Failed to save expenses", err, log.ComponentStorage, log.OpSave,
			log.NewFields().WithErrorType(log.ErrorTypeIO))
		return fmt.Errorf("save expenses: %w", err)
	}
	s.events.LogPersisted(ctx, log.OpSave, s.repo.Location(), len(items))
	return nil
}

// Load replaces the in-memory records with the repository contents.
// Unsaved additions are discarded.
func (s *ExpenseService) Load(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		s.events.LogError(ctx, "Failed to load expenses", err, log.ComponentStorage, log.OpLoad,
			log.NewFields().WithErrorType(log.ErrorTypeIO))
		return fmt.Errorf("load expenses: %w", err)
	}
	s.store.Replace(items)
	s.events.LogPersisted(ctx, log.OpLoad, s.repo.Location(), len(items))
	return nil
}

// Location names where Save and Load go.
func (s *ExpenseService) Location() string {
	return s.repo.Location()
}

// Len is the number of records held in memory.
func (s *ExpenseService) Len() int {
	return s.store.Len()
}

// Close releases the repository
func (s *ExpenseService) Close() error {
	if s.cleanup == nil {
		return nil
	}
	if err := s.cleanup(); err != nil {
		return fmt.Errorf("close expense service: %w", err)
	}
	return nil
}
