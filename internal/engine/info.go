package engine

import "vidgrab/internal/models"

// Thumbnail is one thumbnail candidate.
type Thumbnail struct {
	URL string `json:"url"`
}

// Format is one available stream format.
type Format struct {
	FormatID string `json:"format_id"`
	Height   int    `json:"height"`
}

// Entry is one flat playlist entry.
type Entry struct {
	ID         string      `json:"id"`
	URL        string      `json:"url"`
	WebpageURL string      `json:"webpage_url"`
	Title      string      `json:"title"`
	Uploader   string      `json:"uploader"`
	Thumbnail  string      `json:"thumbnail"`
	Thumbnails []Thumbnail `json:"thumbnails"`
	Duration   float64     `json:"duration"`
}

// Info is the metadata for a video or playlist URL.
type Info struct {
	ID         string   `json:"id"`
	Type       string   `json:"_type"`
	Title      string   `json:"title"`
	Uploader   string   `json:"uploader"`
	Thumbnail  string   `json:"thumbnail"`
	WebpageURL string   `json:"webpage_url"`
	Duration   float64  `json:"duration"`
	IsLive     bool     `json:"is_live"`
	WasLive    bool     `json:"was_live"`
	Formats    []Format `json:"formats"`
	Entries    []Entry  `json:"entries"`
}

// IsPlaylist reports whether the info describes a playlist.
func (i *Info) IsPlaylist() bool {
	return i.Type == "playlist" || len(i.Entries) > 0
}

// MaxHeight returns the highest available video height, or 0 if unknown.
func (i *Info) MaxHeight() int {
	maxH := 0
	for _, f := range i.Formats {
		if f.Height > maxH {
			maxH = f.Height
		}
	}
	return maxH
}

// ThumbnailURL returns the entry thumbnail, falling back to the last listed candidate.
func (e Entry) ThumbnailURL() string {
	if e.Thumbnail != "" {
		return e.Thumbnail
	}
	if n := len(e.Thumbnails); n > 0 {
		return e.Thumbnails[n-1].URL
	}
	return ""
}

// DownloadURL returns the URL to download the entry from.
func (e Entry) DownloadURL() string {
	if e.URL != "" {
		return e.URL
	}
	return e.WebpageURL
}

// Playlist converts playlist info into the orchestrator's model.
func (i *Info) Playlist(url string) models.PlaylistInfo {
	p := models.PlaylistInfo{
		URL:      url,
		Title:    i.Title,
		Uploader: i.Uploader,
		Entries:  make([]models.PlaylistEntry, 0, len(i.Entries)),
	}
	for _, e := range i.Entries {
		p.Entries = append(p.Entries, models.PlaylistEntry{
			URL:          e.DownloadURL(),
			Title:        e.Title,
			ThumbnailURL: e.ThumbnailURL(),
			Duration:     e.Duration,
		})
	}
	return p
}
