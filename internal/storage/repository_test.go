package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "db", "expenses.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_EmptyLoad(t *testing.T) {
	repo := newTestRepo(t)

	items, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSQLiteRepository_SaveReplacesAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := []core.Expense{
		{ID: 1, Date: "2026-01-01", Amount: core.Money{Cents: 999}, Category: "Old", Description: "gone"},
	}
	require.NoError(t, repo.Save(ctx, first))

	second := []core.Expense{
		{ID: 3, Date: "2026-01-05", Amount: core.Money{Cents: 2000}, Category: "Transport", Description: "Train"},
		{ID: 2, Date: "2026-01-05", Amount: core.Money{Cents: 1000}, Category: "Food", Description: "Lunch"},
		{ID: 4, Date: "2026-01-02", Amount: core.Money{Cents: 0}, Category: "Misc", Description: "Free sample"},
	}
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, []int64{4, 2, 3}, []int64{loaded[0].ID, loaded[1].ID, loaded[2].ID})
	assert.ElementsMatch(t, second, loaded)
}

func TestSQLiteRepository_DuplicateIDsRollBack(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	kept := []core.Expense{{ID: 1, Date: "2026-01-01", Amount: core.Money{Cents: 100}, Category: "A", Description: "a"}}
	require.NoError(t, repo.Save(ctx, kept))

	dup := []core.Expense{
		{ID: 5, Date: "2026-01-01", Category: "A", Description: "a"},
		{ID: 5, Date: "2026-01-02", Category: "B", Description: "b"},
	}
	assert.Error(t, repo.Save(ctx, dup))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, kept, loaded)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))
}
