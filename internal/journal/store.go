package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"carelog/internal/core"
	applog "carelog/internal/log"
	"carelog/internal/persist"
)

// RecordsKey is the fixed blob key the full collection is persisted under.
const RecordsKey = "care_records"

// ErrPersist wraps blob write failures surfaced from Create and Delete. The
// in-memory mutation is kept either way; the caller only learns the write
// was not durable.
var ErrPersist = errors.New("persist records")

// Store is the single source of truth for care records. It owns the ordered
// collection (insertion order, newest first) and the persistence round-trip.
// A mutex serializes all operations so no two blob writes are ever in flight.
type Store struct {
	mu        sync.Mutex
	blob      persist.Blob
	logger    *applog.Logger
	records   []core.CareRecord
	revision  uint64
	observers []func()

	now   func() time.Time
	newID func() string
}

func NewStore(blob persist.Blob) *Store {
	return &Store{
		blob:   blob,
		logger: applog.ForComponent(applog.ComponentJournal),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Subscribe registers a callback fired after every successful Create, Delete,
// and Load. Callbacks run synchronously on the mutating goroutine and must
// not call back into the store.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Load reads the persisted collection. A missing or unparsable blob degrades
// to an empty collection; history that cannot be read is logged and dropped
// rather than crashing a journal that otherwise still works.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()

	data, err := s.blob.Read(ctx, RecordsKey)
	switch {
	case errors.Is(err, persist.ErrNotFound):
		s.records = nil
	case err != nil:
		s.logger.WarnContext(ctx, "Failed to read records blob, starting empty",
			applog.FieldOperation, applog.OpLoad,
			applog.FieldBlobKey, RecordsKey,
			applog.FieldError, err)
		s.records = nil
	default:
		var records []core.CareRecord
		if err := json.Unmarshal(data, &records); err != nil {
			s.logger.WarnContext(ctx, "Failed to decode records blob, starting empty",
				applog.FieldOperation, applog.OpLoad,
				applog.FieldBlobKey, RecordsKey,
				applog.FieldError, err)
			records = nil
		}
		s.records = records
	}
	s.revision++

	observers := s.snapshotObservers()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Record store loaded",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldRecordCount, s.Len(),
		applog.FieldRevision, s.Revision())
	notify(observers)
}

// Create validates the draft, assigns id and timestamp, prepends the record,
// and persists the full collection. On write failure the record is kept in
// memory and the error is returned wrapped in ErrPersist.
func (s *Store) Create(ctx context.Context, draft core.Draft) (core.CareRecord, error) {
	if err := draft.Validate(); err != nil {
		return core.CareRecord{}, err
	}

	s.mu.Lock()
	record := core.CareRecord{
		ID:               s.newID(),
		Timestamp:        s.now(),
		TaskType:         draft.TaskType,
		RecipientType:    draft.RecipientType,
		EmotionalWeight:  draft.EmotionalWeight,
		TimeSpentMinutes: draft.TimeSpentMinutes,
		Notes:            draft.Notes,
		WasVisible:       draft.WasVisible,
	}
	s.records = append([]core.CareRecord{record}, s.records...)
	s.revision++
	saveErr := s.save(ctx)
	observers := s.snapshotObservers()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Care record created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldRecordID, record.ID,
		applog.FieldTaskType, record.TaskType,
		applog.FieldRecipientType, record.RecipientType,
		applog.FieldWeight, record.EmotionalWeight,
		applog.FieldMinutes, record.TimeSpentMinutes,
		applog.FieldVisible, record.WasVisible)

	notify(observers)
	return record, saveErr
}

// Delete removes the record with the given id. A missing id is a no-op, not
// an error; observers still fire and the collection is still persisted.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	removed := false
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			removed = true
			break
		}
	}
	s.revision++
	saveErr := s.save(ctx)
	observers := s.snapshotObservers()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Care record deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldRecordID, id,
		"removed", removed)
	notify(observers)
	return saveErr
}

// All returns the current collection, newest first, as a copy callers may
// hold or mutate freely.
func (s *Store) All() []core.CareRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.CareRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Revision returns a counter incremented on every mutation, including Load.
// Consumers use it to key caches of derived data.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// save serializes the full collection and replaces the blob. Caller holds mu.
func (s *Store) save(ctx context.Context) error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if err := s.blob.Write(ctx, RecordsKey, data); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist records",
			applog.FieldOperation, applog.OpSave,
			applog.FieldBlobKey, RecordsKey,
			applog.FieldError, err)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

func (s *Store) snapshotObservers() []func() {
	out := make([]func(), len(s.observers))
	copy(out, s.observers)
	return out
}

func notify(observers []func()) {
	for _, fn := range observers {
		fn()
	}
}
