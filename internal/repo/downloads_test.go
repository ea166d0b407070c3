package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vidgrab/internal/database"
	"vidgrab/internal/models"
)

func newStore(t *testing.T) *DownloadStore {
	t.Helper()

	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ds := GetDownloadStore(db.DB)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var tick int
	ds.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return ds
}

// TestUpsertStatusesInsertsAndUpdates checks one row per run entry.
func TestUpsertStatusesInsertsAndUpdates(t *testing.T) {
	t.Parallel()

	ds := newStore(t)
	ctx := context.Background()

	err := ds.UpsertStatuses(ctx, []models.StatusUpdate{
		{RunID: "r1", EntryIndex: 0, URL: "https://x/0", Title: "zero", Status: models.LedgerPending},
		{RunID: "r1", EntryIndex: 1, URL: "https://x/1", Title: "one", Status: models.LedgerPending},
	})
	if err != nil {
		t.Fatalf("UpsertStatuses: %v", err)
	}

	err = ds.UpsertStatuses(ctx, []models.StatusUpdate{
		{RunID: "r1", EntryIndex: 0, Status: models.LedgerDone, Percent: 97},
		{RunID: "r1", EntryIndex: 1, Status: models.LedgerFailed, Percent: -3, Error: "Download Failed: gone"},
	})
	if err != nil {
		t.Fatalf("UpsertStatuses: %v", err)
	}

	rows, err := ds.ListRun(ctx, "r1")
	if err != nil {
		t.Fatalf("ListRun: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if rows[0].Status != models.LedgerDone || rows[0].Percent != 100 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].Title != "zero" || rows[0].URL != "https://x/0" {
		t.Errorf("row 0 lost its title or URL: %+v", rows[0])
	}
	if rows[1].Status != models.LedgerFailed || rows[1].Percent != 0 || rows[1].Error != "Download Failed: gone" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

// TestListRecentOrderAndLimit checks newest-first ordering.
func TestListRecentOrderAndLimit(t *testing.T) {
	t.Parallel()

	ds := newStore(t)
	ctx := context.Background()

	for i := range 3 {
		if err := ds.UpsertStatuses(ctx, []models.StatusUpdate{
			{RunID: "r", EntryIndex: i, Status: models.LedgerActive},
		}); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := ds.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].EntryIndex != 2 || rows[1].EntryIndex != 1 {
		t.Errorf("unexpected order: %d, %d", rows[0].EntryIndex, rows[1].EntryIndex)
	}
}

// TestMarkInterrupted checks unfinished rows become cancelled.
func TestMarkInterrupted(t *testing.T) {
	t.Parallel()

	ds := newStore(t)
	ctx := context.Background()

	if err := ds.UpsertStatuses(ctx, []models.StatusUpdate{
		{RunID: "r", EntryIndex: 0, Status: models.LedgerDone},
		{RunID: "r", EntryIndex: 1, Status: models.LedgerActive},
		{RunID: "r", EntryIndex: 2, Status: models.LedgerPending},
	}); err != nil {
		t.Fatal(err)
	}

	n, err := ds.MarkInterrupted(ctx)
	if err != nil {
		t.Fatalf("MarkInterrupted: %v", err)
	}
	if n != 2 {
		t.Errorf("marked %d rows, want 2", n)
	}

	rows, err := ds.ListRun(ctx, "r")
	if err != nil {
		t.Fatal(err)
	}
	want := []models.LedgerStatus{models.LedgerDone, models.LedgerCancelled, models.LedgerCancelled}
	for i, r := range rows {
		if r.Status != want[i] {
			t.Errorf("row %d status = %q, want %q", i, r.Status, want[i])
		}
	}
}

// TestUpsertEmptyBatch checks an empty batch is a no-op.
func TestUpsertEmptyBatch(t *testing.T) {
	t.Parallel()

	ds := newStore(t)
	if err := ds.UpsertStatuses(context.Background(), nil); err != nil {
		t.Errorf("empty batch: %v", err)
	}
}
