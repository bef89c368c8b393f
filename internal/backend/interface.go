package backend

import (
	"context"

	"carelog/internal/persist"
)

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result contains the blob store and optional cleanup function.
type Result struct {
	Blob    persist.Blob
	Cleanup CleanupFunc
}

// Factory creates blob backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// File backend
	DataDirectory string

	// SQLite backend
	SQLiteDBPath string
}

// Type identifies a persistence backend.
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
