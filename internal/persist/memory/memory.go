package memory

import (
	"context"
	"sync"

	"carelog/internal/persist"
)

// Store is a map-backed blob store for tests and ephemeral runs.
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// FailWrites, when set, is returned from every Write. Lets tests exercise
	// the journal's write-failure path.
	FailWrites error
}

func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, persist.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *Store) Write(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = stored
	return nil
}

// Seed places raw bytes under a key, bypassing Write failures. Used by tests
// to stage pre-existing (including corrupt) blobs.
func (s *Store) Seed(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
}
