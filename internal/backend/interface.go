package backend

import (
	"context"

	"expenses/internal/ports"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the repository and an optional cleanup function
type BackendResult struct {
	Repository ports.Repository
	Cleanup    CleanupFunc
}

// Factory creates repositories based on configuration
type Factory interface {
	// CreateBackend creates a repository based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// TSV specific
	ExpensesFile string

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	TSVBackend    BackendType = "tsv"
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case TSVBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
