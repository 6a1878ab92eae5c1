package backend

import (
	"context"
	"fmt"

	"expenses/internal/log"
	"expenses/internal/storage"
	"expenses/internal/storage/memory"
	"expenses/internal/storage/tsv"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case TSVBackend:
		return f.createTSVBackend(ctx, config)
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(ctx)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createTSVBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo := tsv.New(config.ExpensesFile, f.logger)

	f.logger.InfoContext(ctx, "Initialized TSV backend",
		log.NewFields().WithStorage(string(TSVBackend), repo.Location()).ToSlice()...)

	return &BackendResult{
		Repository: repo,
		Cleanup:    nil, // Nothing held open between calls
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
	if err != nil {
		f.logger.ErrorContext(ctx, "Failed to open SQLite database", log.NewFields().
			WithStorage(string(SQLiteBackend), config.SQLiteDBPath).
			WithErrorType(log.ErrorTypeDatabase).
			WithError(err).
			ToSlice()...)
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend",
		log.NewFields().WithStorage(string(SQLiteBackend), repo.Location()).ToSlice()...)

	return &BackendResult{
		Repository: repo,
		Cleanup:    repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context) (*BackendResult, error) {
	repo := memory.New()
	f.logger.InfoContext(ctx, "Initialized memory backend; nothing will be written to disk",
		log.NewFields().WithStorage(string(MemoryBackend), repo.Location()).ToSlice()...)

	return &BackendResult{
		Repository: repo,
		Cleanup:    nil,
	}, nil
}
