package models

// HistoryEntry is one completed download, newest first in the history document.
type HistoryEntry struct {
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	ThumbnailURL    string   `json:"thumbnail,omitempty"`
	Uploader        string   `json:"uploader,omitempty"`
	Date            string   `json:"date"`
	Kind            ItemKind `json:"type"`
	SizeLabel       string   `json:"size,omitempty"`
	ResolutionLabel string   `json:"resolution,omitempty"`
	DurationSeconds float64  `json:"duration,omitempty"`
	EntryCount      int      `json:"count,omitempty"`
}
