// Package store persists the settings, queue and history documents as whole JSON files.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"vidgrab/internal/logging"
)

// Document file names inside a store directory.
const (
	SettingsFile = "settings.json"
	QueueFile    = "queue.json"
	HistoryFile  = "history.json"
)

// Store owns the three persisted documents.
//
// Every mutation is a full read-modify-write of one document under the store lock.
type Store struct {
	settingsPath string
	queuePath    string
	historyPath  string

	mu sync.Mutex
}

// New returns a store backed by the given document paths.
func New(settingsPath, queuePath, historyPath string) *Store {
	return &Store{
		settingsPath: settingsPath,
		queuePath:    queuePath,
		historyPath:  historyPath,
	}
}

// Open returns a store with all documents inside dir.
func Open(dir string) *Store {
	return New(
		filepath.Join(dir, SettingsFile),
		filepath.Join(dir, QueueFile),
		filepath.Join(dir, HistoryFile),
	)
}

// loadDoc decodes path into out. It returns false if the file is missing or unreadable JSON.
func loadDoc(path string, out any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.W("Could not read %q, using defaults: %v", path, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logging.W("Corrupt document %q, using defaults: %v", path, err)
		return false
	}
	return true
}

// saveDoc encodes v and writes it to path.
func saveDoc(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", path, err)
	}
	return writeDoc(path, data)
}
