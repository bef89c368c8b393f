package journal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"carelog/internal/core"
	applog "carelog/internal/log"
	"carelog/internal/persist/memory"
)

func testStore() (*Store, *memory.Store) {
	blob := memory.New()
	store := NewStore(blob)
	return store, blob
}

func testDraft() core.Draft {
	return core.Draft{
		TaskType:         core.EmotionalSupport,
		RecipientType:    core.Roommate,
		EmotionalWeight:  4,
		TimeSpentMinutes: 25,
		Notes:            "listened after a rough day",
		WasVisible:       false,
	}
}

func TestCreateInsertsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()
	store.Load(ctx)

	first, err := store.Create(ctx, testDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := store.Create(ctx, testDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	all := store.All()
	if len(all) != 2 {
		t.Fatalf("got %d records, want 2", len(all))
	}
	if all[0].ID != second.ID {
		t.Fatalf("newest record not first: got %s, want %s", all[0].ID, second.ID)
	}
	if all[1].ID != first.ID {
		t.Fatalf("older record not second: got %s, want %s", all[1].ID, first.ID)
	}
	if first.ID == second.ID {
		t.Fatal("ids must be unique")
	}
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()
	now := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	store.newID = func() string { return "fixed-id" }

	record, err := store.Create(ctx, testDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.ID != "fixed-id" {
		t.Fatalf("id: got %s", record.ID)
	}
	if !record.Timestamp.Equal(now) {
		t.Fatalf("timestamp: got %v, want %v", record.Timestamp, now)
	}
	if record.TaskType != core.EmotionalSupport || record.TimeSpentMinutes != 25 {
		t.Fatalf("draft fields not carried over: %+v", record)
	}
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	draft := testDraft()
	draft.EmotionalWeight = 6
	if _, err := store.Create(ctx, draft); !errors.Is(err, core.ErrInvalidEmotionalWeight) {
		t.Fatalf("expected ErrInvalidEmotionalWeight, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("invalid draft must not be stored, len=%d", store.Len())
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	record, err := store.Create(ctx, testDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	keep, err := store.Create(ctx, testDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.Delete(ctx, record.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all := store.All()
	if len(all) != 1 {
		t.Fatalf("got %d records, want 1", len(all))
	}
	for _, r := range all {
		if r.ID == record.ID {
			t.Fatal("deleted record still present")
		}
	}
	if all[0].ID != keep.ID {
		t.Fatalf("wrong record deleted: %s", all[0].ID)
	}

	// Deleting an absent id is a no-op, not an error
	if err := store.Delete(ctx, "no-such-id"); err != nil {
		t.Fatalf("delete absent id: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("no-op delete changed length: %d", store.Len())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, blob := testStore()

	var created []core.CareRecord
	for i := 0; i < 3; i++ {
		draft := testDraft()
		draft.TimeSpentMinutes = 10 + i*5
		draft.WasVisible = i%2 == 0
		record, err := store.Create(ctx, draft)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		created = append(created, record)
	}

	// A fresh store over the same blob reconstructs the collection
	reloaded := NewStore(blob)
	reloaded.Load(ctx)

	all := reloaded.All()
	if len(all) != len(created) {
		t.Fatalf("got %d records, want %d", len(all), len(created))
	}
	// Newest first: created[2] leads
	for i, want := range []core.CareRecord{created[2], created[1], created[0]} {
		if all[i] != want {
			t.Fatalf("record %d mismatch:\n got %+v\nwant %+v", i, all[i], want)
		}
	}
}

func TestLoadMissingBlobYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()
	store.Load(ctx)
	if store.Len() != 0 {
		t.Fatalf("got %d records, want 0", store.Len())
	}
}

func TestLoadCorruptBlobYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	blob := memory.New()
	blob.Seed(RecordsKey, []byte("{not json at all"))

	store := NewStore(blob)
	store.Load(ctx)
	if store.Len() != 0 {
		t.Fatalf("corrupt blob: got %d records, want 0", store.Len())
	}

	// The store keeps working after a corrupt load
	if _, err := store.Create(ctx, testDraft()); err != nil {
		t.Fatalf("create after corrupt load: %v", err)
	}
}

func TestWriteFailureSurfacedButRecordKept(t *testing.T) {
	ctx := context.Background()
	store, blob := testStore()
	blob.FailWrites = fmt.Errorf("disk full")

	record, err := store.Create(ctx, testDraft())
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}
	if record.ID == "" {
		t.Fatal("record should still be returned")
	}
	if store.Len() != 1 {
		t.Fatalf("record should stay in memory, len=%d", store.Len())
	}

	if err := store.Delete(ctx, record.ID); !errors.Is(err, ErrPersist) {
		t.Fatalf("expected ErrPersist from delete, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("delete should still apply in memory, len=%d", store.Len())
	}
}

func TestObserversFireOnMutations(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	fired := 0
	store.Subscribe(func() { fired++ })

	store.Load(ctx)
	if fired != 1 {
		t.Fatalf("after load: fired %d, want 1", fired)
	}

	record, err := store.Create(ctx, testDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if fired != 2 {
		t.Fatalf("after create: fired %d, want 2", fired)
	}

	if err := store.Delete(ctx, record.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if fired != 3 {
		t.Fatalf("after delete: fired %d, want 3", fired)
	}
}

func TestRevisionIncrements(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	before := store.Revision()
	store.Load(ctx)
	afterLoad := store.Revision()
	if afterLoad <= before {
		t.Fatalf("load did not bump revision: %d -> %d", before, afterLoad)
	}

	record, err := store.Create(ctx, testDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	afterCreate := store.Revision()
	if afterCreate <= afterLoad {
		t.Fatalf("create did not bump revision: %d -> %d", afterLoad, afterCreate)
	}

	if err := store.Delete(ctx, record.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if store.Revision() <= afterCreate {
		t.Fatalf("delete did not bump revision")
	}
}

func TestLoggingUsesComponentAndFieldNames(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(previous)

	blob := memory.New()
	blob.Seed(RecordsKey, []byte("{corrupt"))
	store := NewStore(blob)
	store.Load(ctx)

	record, err := store.Create(ctx, testDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Delete(ctx, record.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		applog.FieldComponent + "=" + applog.ComponentJournal,
		applog.FieldOperation + "=" + applog.OpLoad,
		applog.FieldOperation + "=" + applog.OpCreate,
		applog.FieldOperation + "=" + applog.OpDelete,
		applog.FieldRecordID + "=" + record.ID,
		applog.FieldTaskType + "=",
		applog.FieldRecipientType + "=",
		applog.FieldMinutes + "=25",
		applog.FieldWeight + "=4",
		applog.FieldVisible + "=false",
		applog.FieldBlobKey + "=" + RecordsKey,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestAllReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()
	if _, err := store.Create(ctx, testDraft()); err != nil {
		t.Fatalf("create: %v", err)
	}

	snapshot := store.All()
	snapshot[0].Notes = "mutated"
	if store.All()[0].Notes == "mutated" {
		t.Fatal("All must return a copy, not the backing slice")
	}
}
