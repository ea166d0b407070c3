package store

import (
	"fmt"

	"vidgrab/internal/models"
)

// LoadQueue returns the queue in FIFO order. A missing or corrupt document is an empty queue.
func (s *Store) LoadQueue() []models.QueueItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadQueue()
}

func (s *Store) loadQueue() []models.QueueItem {
	var items []models.QueueItem
	if !loadDoc(s.queuePath, &items) || items == nil {
		return []models.QueueItem{}
	}
	return items
}

// SaveQueue replaces the whole queue document.
func (s *Store) SaveQueue(items []models.QueueItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveQueue(items)
}

func (s *Store) saveQueue(items []models.QueueItem) error {
	if items == nil {
		items = []models.QueueItem{}
	}
	return saveDoc(s.queuePath, items)
}

// AddToQueue appends item to the tail of the queue.
func (s *Store) AddToQueue(item models.QueueItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadQueue()
	items = append(items, item)
	return s.saveQueue(items)
}

// PopQueue removes and returns the head of the queue. ok is false if the queue is empty.
func (s *Store) PopQueue() (item models.QueueItem, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadQueue()
	if len(items) == 0 {
		return models.QueueItem{}, false, nil
	}
	item = items[0]
	if err := s.saveQueue(items[1:]); err != nil {
		return models.QueueItem{}, false, err
	}
	return item, true, nil
}

// RemoveFromQueue deletes the item at index.
func (s *Store) RemoveFromQueue(index int) (models.QueueItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadQueue()
	if index < 0 || index >= len(items) {
		return models.QueueItem{}, fmt.Errorf("queue index %d out of range (queue has %d items)", index, len(items))
	}
	removed := items[index]
	items = append(items[:index], items[index+1:]...)
	return removed, s.saveQueue(items)
}

// ClearQueue empties the queue.
func (s *Store) ClearQueue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveQueue(nil)
}
