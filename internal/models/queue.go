package models

// ItemKind is the kind of a queued or historical item.
type ItemKind string

const (
	KindVideo      ItemKind = "video"
	KindPlaylist   ItemKind = "playlist"
	KindUnresolved ItemKind = "unknown"
)

// QueueItem is one persisted queue element.
type QueueItem struct {
	URL          string   `json:"url"`
	FormatKey    string   `json:"format"`
	Title        string   `json:"title"`
	ThumbnailURL string   `json:"thumbnail,omitempty"`
	Uploader     string   `json:"uploader,omitempty"`
	Kind         ItemKind `json:"type"`
	Count        int      `json:"count,omitempty"`
	Duration     float64  `json:"duration,omitempty"`
}
