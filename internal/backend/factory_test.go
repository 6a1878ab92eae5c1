package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/config"
	"expenses/internal/log"
	"expenses/internal/storage"
	"expenses/internal/storage/memory"
	"expenses/internal/storage/tsv"
)

func TestCreateBackend(t *testing.T) {
	dir := t.TempDir()
	f := NewFactory(nil)
	ctx := context.Background()

	t.Run("tsv", func(t *testing.T) {
		path := filepath.Join(dir, "expenses.tsv")
		res, err := f.CreateBackend(ctx, Config{Type: TSVBackend, ExpensesFile: path})
		require.NoError(t, err)
		assert.IsType(t, &tsv.Repository{}, res.Repository)
		assert.Equal(t, path, res.Repository.Location())
		assert.Nil(t, res.Cleanup)
	})

	t.Run("sqlite", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "expenses.db")})
		require.NoError(t, err)
		assert.IsType(t, &storage.SQLiteRepository{}, res.Repository)
		require.NotNil(t, res.Cleanup)
		assert.NoError(t, res.Cleanup())
	})

	t.Run("memory", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend})
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, res.Repository)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := f.CreateBackend(ctx, Config{Type: "sheets"})
		assert.Error(t, err)
	})

	t.Run("tsv without path", func(t *testing.T) {
		_, err := f.CreateBackend(ctx, Config{Type: TSVBackend})
		assert.Error(t, err)
	})
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", ExpensesFile: "x.tsv"})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, SQLiteDBPath: "x.db", ExpensesFile: "x.tsv"}, cfg)

	_, err = FromAppConfig(&config.Config{DataBackend: "nope"})
	assert.Error(t, err)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)
}

func TestGetBackendTypeStrings(t *testing.T) {
	assert.Equal(t, []string{"tsv", "sqlite", "memory"}, GetBackendTypeStrings())
}

func TestCreateBackend_LogsStorageFields(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelInfo, Format: "json", Output: &buf})
	path := filepath.Join(t.TempDir(), "expenses.tsv")

	_, err := NewFactory(logger).CreateBackend(context.Background(), Config{Type: TSVBackend, ExpensesFile: path})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Initialized TSV backend", entry["msg"])
	assert.Equal(t, "tsv", entry[log.FieldBackend])
	assert.Equal(t, path, entry[log.FieldLocation])
	assert.Equal(t, log.ComponentBackend, entry[log.FieldComponent])
}
