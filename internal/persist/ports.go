package persist

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// Blob is the port for the key-value blob stores the journal persists into.
// Write must replace the previous value atomically; readers never observe a
// partially written blob.
type Blob interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}
