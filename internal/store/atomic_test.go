package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vidgrab/internal/models"
)

// TestWriteDocFallsBackToDirectWrite checks a failed rename still leaves the new document on disk.
//
// Not parallel: it swaps renameFile for the whole package.
func TestWriteDocFallsBackToDirectWrite(t *testing.T) {
	orig := renameFile
	renameFile = func(string, string) error { return errors.New("rename refused") }
	t.Cleanup(func() { renameFile = orig })

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte(`{"old":true}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := writeDoc(path, []byte(`{"new":true}`)); err != nil {
		t.Fatalf("writeDoc: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"new":true}` {
		t.Errorf("document = %s, want new content", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "doc.json" {
			t.Errorf("unexpected file left behind: %s", e.Name())
		}
	}
}

// TestStoreSurvivesAtomicFailure checks store documents round-trip through the direct write path.
//
// Not parallel: it swaps renameFile for the whole package.
func TestStoreSurvivesAtomicFailure(t *testing.T) {
	orig := renameFile
	renameFile = func(string, string) error { return errors.New("rename refused") }
	t.Cleanup(func() { renameFile = orig })

	dir := t.TempDir()
	s := Open(dir)
	if err := s.AddToQueue(models.QueueItem{URL: "A"}); err != nil {
		t.Fatalf("AddToQueue: %v", err)
	}
	if got := s.LoadQueue(); len(got) != 1 || got[0].URL != "A" {
		t.Errorf("queue = %+v, want one item A", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != QueueFile {
			t.Errorf("unexpected file left behind: %s", e.Name())
		}
	}
}
