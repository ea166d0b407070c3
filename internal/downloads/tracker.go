package downloads

import (
	"context"
	"sync"
	"time"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
)

// StatusStore persists download status updates.
type StatusStore interface {
	UpsertStatuses(ctx context.Context, updates []models.StatusUpdate) error
}

type updateKey struct {
	runID string
	index int
}

// Tracker batches status updates and flushes them to a StatusStore.
//
// A nil *Tracker accepts and drops updates.
type Tracker struct {
	store      StatusStore
	updates    chan models.StatusUpdate
	flushTimer time.Duration
	done       chan struct{}
	stopped    chan struct{}
	stopOnce   sync.Once
}

// NewTracker returns a tracker writing to store.
func NewTracker(store StatusStore) *Tracker {
	return &Tracker{
		store:      store,
		updates:    make(chan models.StatusUpdate, 100),
		flushTimer: consts.TrackerFlush,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Start starts status tracking.
func (t *Tracker) Start() {
	if t == nil {
		return
	}
	go t.processUpdates()
}

// Stop flushes pending updates and stops tracking.
func (t *Tracker) Stop() {
	if t == nil {
		return
	}
	t.stopOnce.Do(func() { close(t.done) })
	<-t.stopped
}

// Update queues a status update.
func (t *Tracker) Update(u models.StatusUpdate) {
	if t == nil {
		return
	}
	select {
	case t.updates <- u:
	case <-t.done:
	}
}

// processUpdates keeps the latest update per entry and flushes on each tick.
func (t *Tracker) processUpdates() {
	defer close(t.stopped)

	ticker := time.NewTicker(t.flushTimer)
	defer ticker.Stop()

	pending := make(map[updateKey]models.StatusUpdate)
	var order []updateKey

	add := func(u models.StatusUpdate) {
		k := updateKey{u.RunID, u.EntryIndex}
		if _, ok := pending[k]; !ok {
			order = append(order, k)
		}
		pending[k] = u
	}
	flush := func() {
		if len(order) == 0 {
			return
		}
		batch := make([]models.StatusUpdate, 0, len(order))
		for _, k := range order {
			batch = append(batch, pending[k])
		}
		clear(pending)
		order = order[:0]
		t.flushUpdates(batch)
	}

	for {
		select {
		case <-t.done:
			for {
				select {
				case u := <-t.updates:
					add(u)
				default:
					flush()
					return
				}
			}
		case u := <-t.updates:
			add(u)
		case <-ticker.C:
			flush()
		}
	}
}

// flushUpdates writes a batch, retrying transient failures.
func (t *Tracker) flushUpdates(updates []models.StatusUpdate) {
	ctx, cancel := context.WithTimeout(context.Background(), consts.TrackerTimeout)
	defer cancel()

	for attempt := 0; attempt < consts.TrackerRetries; attempt++ {
		err := t.store.UpsertStatuses(ctx, updates)
		if err == nil {
			logging.D(2, "Flushed %d status updates", len(updates))
			return
		}
		if attempt == consts.TrackerRetries-1 {
			logging.E("Failed to update download statuses after %d attempts: %v", consts.TrackerRetries, err)
			return
		}
		logging.W("Retrying status update after failure (attempt %d/%d): %v", attempt+1, consts.TrackerRetries, err)
		time.Sleep(consts.TrackerBackoff * time.Duration(attempt+1))
	}
}
