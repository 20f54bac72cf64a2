// Package backend selects the dataset store at startup.
package backend

import (
	"context"

	"khata/internal/dataset"
)

// CleanupFunc releases a backend's resources on shutdown.
type CleanupFunc func() error

// Result holds the created store and its optional cleanup.
type Result struct {
	Store   dataset.Store
	Cleanup CleanupFunc
}

// Factory creates dataset stores based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDSN string
}

// Type names a dataset backend.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
