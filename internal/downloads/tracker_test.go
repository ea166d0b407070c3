package downloads

import (
	"context"
	"errors"
	"sync"
	"testing"

	"vidgrab/internal/models"
)

type memStatusStore struct {
	mu      sync.Mutex
	fails   int
	batches [][]models.StatusUpdate
}

func (m *memStatusStore) UpsertStatuses(_ context.Context, u []models.StatusUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fails > 0 {
		m.fails--
		return errors.New("database is locked")
	}
	m.batches = append(m.batches, u)
	return nil
}

// TestTrackerFlushOnStop checks the latest update per entry is written on stop.
func TestTrackerFlushOnStop(t *testing.T) {
	t.Parallel()
	store := &memStatusStore{fails: 1}
	tr := NewTracker(store)
	tr.Start()

	tr.Update(models.StatusUpdate{RunID: "r", EntryIndex: 0, Status: models.LedgerActive})
	tr.Update(models.StatusUpdate{RunID: "r", EntryIndex: 0, Status: models.LedgerDone, Percent: 100})
	tr.Update(models.StatusUpdate{RunID: "r", EntryIndex: 1, Status: models.LedgerFailed})
	tr.Stop()

	store.mu.Lock()
	defer store.mu.Unlock()
	latest := map[int]models.StatusUpdate{}
	for _, b := range store.batches {
		for _, u := range b {
			latest[u.EntryIndex] = u
		}
	}
	if latest[0].Status != models.LedgerDone || latest[1].Status != models.LedgerFailed {
		t.Fatalf("unexpected final statuses %+v", latest)
	}
}

// TestNilTracker checks a nil tracker is inert.
func TestNilTracker(t *testing.T) {
	t.Parallel()
	var tr *Tracker
	tr.Start()
	tr.Update(models.StatusUpdate{})
	tr.Stop()
}
