package store

import (
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/models"
)

// LoadHistory returns history entries, newest first.
func (s *Store) LoadHistory() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadHistory()
}

func (s *Store) loadHistory() []models.HistoryEntry {
	var entries []models.HistoryEntry
	if !loadDoc(s.historyPath, &entries) || entries == nil {
		return []models.HistoryEntry{}
	}
	return entries
}

// SaveHistory replaces the history document, keeping at most HistoryCap entries.
func (s *Store) SaveHistory(entries []models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveHistory(entries)
}

func (s *Store) saveHistory(entries []models.HistoryEntry) error {
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	if len(entries) > consts.HistoryCap {
		entries = entries[:consts.HistoryCap]
	}
	return saveDoc(s.historyPath, entries)
}

// AddHistory inserts entry at the head of the history, dropping the oldest beyond the cap.
func (s *Store) AddHistory(entry models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.loadHistory()
	entries = append([]models.HistoryEntry{entry}, entries...)
	return s.saveHistory(entries)
}

// ClearHistory empties the history.
func (s *Store) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveHistory(nil)
}
