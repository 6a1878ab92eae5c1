package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"expenses/internal/core"
	"expenses/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores the expense list in a single SQLite table.
type SQLiteRepository struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentStorage)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		logger.Error("Database migration failed", log.NewFields().
			WithOperation(log.OpMigrate).
			WithErrorType(log.ErrorTypeDatabase).
			WithError(err).
			ToSlice()...)
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Debug("Database schema up to date", log.FieldOperation, log.OpMigrate, log.FieldLocation, dbPath)

	return &SQLiteRepository{
		db:     db,
		path:   dbPath,
		logger: logger,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Location() string {
	return r.path
}

// Load implements ports.ExpenseLoader. Rows that fail validation are skipped.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, amount_cents, category, description FROM expenses ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var (
		items   []core.Expense
		skipped int
	)
	for rows.Next() {
		var (
			e    core.Expense
			date string
		)
		if err := rows.Scan(&e.ID, &date, &e.Amount.Cents, &e.Category, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date = core.Date(date)
		if e.ID <= 0 || e.Amount.Validate() != nil {
			skipped++
			continue
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	if skipped > 0 {
		r.logger.DebugContext(ctx, "Skipped malformed rows",
			log.FieldLocation, r.path,
			log.FieldSkipped, skipped)
	}
	return items, nil
}

// Save implements ports.ExpenseSaver by replacing the table contents in one
// transaction.
func (r *SQLiteRepository) Save(ctx context.Context, items []core.Expense) error {
	rows := append([]core.Expense(nil), items...)
	core.SortByDate(rows)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (id, date, amount_cents, category, description) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range rows {
		if _, err := stmt.ExecContext(ctx, e.ID, string(e.Date), e.Amount.Cents, e.Category, e.Description); err != nil {
			return fmt.Errorf("insert expense %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
