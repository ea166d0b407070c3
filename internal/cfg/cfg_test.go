package cfg

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"vidgrab/internal/app"
	"vidgrab/internal/command/builder"
	"vidgrab/internal/dispatch"
	"vidgrab/internal/downloads"
	"vidgrab/internal/engine"
	"vidgrab/internal/models"
	"vidgrab/internal/store"
)

// TestSetSetting checks typed updates by document key.
func TestSetSetting(t *testing.T) {
	t.Parallel()

	s := models.DefaultSettings()
	if err := setSetting(&s, "proxy_url", "socks5://127.0.0.1:9050"); err != nil {
		t.Fatalf("set proxy_url: %v", err)
	}
	if err := setSetting(&s, "embed_thumbnail", "false"); err != nil {
		t.Fatalf("set embed_thumbnail: %v", err)
	}
	if s.ProxyURL != "socks5://127.0.0.1:9050" || s.EmbedThumbnail {
		t.Errorf("settings not updated: %+v", s)
	}
	if !s.EmbedMetadata || s.Theme != "System" {
		t.Errorf("other settings changed: %+v", s)
	}

	if err := setSetting(&s, "embed_metadata", "maybe"); err == nil {
		t.Errorf("expected error for non-bool value")
	}
	if err := setSetting(&s, "no_such_key", "x"); err == nil {
		t.Errorf("expected error for unknown key")
	}
}

// TestFilterSince checks the history date filter.
func TestFilterSince(t *testing.T) {
	t.Parallel()

	entries := []models.HistoryEntry{
		{Title: "new", Date: "2024-06-02 10:00"},
		{Title: "edge", Date: "2024-06-01 00:00"},
		{Title: "old", Date: "2024-05-30 23:59"},
		{Title: "odd", Date: "yesterday"},
	}
	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	got := filterSince(entries, since)
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3: %+v", len(got), got)
	}
	for _, h := range got {
		if h.Title == "old" {
			t.Errorf("old entry not filtered")
		}
	}
}

// TestRedownloadFormat checks the recorded resolution is reused only when known.
func TestRedownloadFormat(t *testing.T) {
	t.Parallel()

	s := models.Settings{DefaultFormat: "Video"}
	if got := redownloadFormat(models.HistoryEntry{ResolutionLabel: "mp3_320"}, s); got != "mp3_320" {
		t.Errorf("got %q, want mp3_320", got)
	}
	if got := redownloadFormat(models.HistoryEntry{ResolutionLabel: "Video"}, s); got != "Video" {
		t.Errorf("got %q, want default", got)
	}
	if got := redownloadFormat(models.HistoryEntry{}, s); got != "Video" {
		t.Errorf("got %q, want default", got)
	}
}

type playlistEngine struct {
	mu   sync.Mutex
	info *engine.Info
	got  []string
}

func (p *playlistEngine) FetchMetadata(context.Context, string) (*engine.Info, error) {
	return p.info, nil
}

func (p *playlistEngine) Download(_ context.Context, url string, _ builder.EngineConfig, _ engine.Hook) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, url)
	return nil
}

func testController(t *testing.T, eng engine.Engine) (*app.Controller, models.Settings) {
	t.Helper()

	st := store.Open(t.TempDir())
	settings := st.LoadSettings()
	settings.DownloadPath = filepath.Join(t.TempDir(), "dl")
	settings.Notifications = false

	c := app.New(eng, st, nil, nil, dispatch.Discard{})
	c.Playlist.Pause = 0
	return c, settings
}

// TestRunDownloadRejectsPlaylistTrim checks trims are refused for playlists.
func TestRunDownloadRejectsPlaylistTrim(t *testing.T) {
	t.Parallel()

	eng := &playlistEngine{info: &engine.Info{Type: "playlist", Title: "P", Entries: []engine.Entry{{URL: "https://example.com/1"}}}}
	c, settings := testController(t, eng)

	err := runDownload(context.Background(), c, settings, "https://example.com/list", downloadOpts{trimStart: "0:10", trimEnd: "0:20"})
	var confErr *downloads.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("err = %v, want ConfigurationError", err)
	}
	if len(eng.got) != 0 {
		t.Errorf("engine ran for a rejected request")
	}
}

// TestRunDownloadNoPlaylist checks --no-playlist downloads the URL itself.
func TestRunDownloadNoPlaylist(t *testing.T) {
	t.Parallel()

	eng := &playlistEngine{info: &engine.Info{Type: "playlist", Title: "P", Entries: []engine.Entry{{URL: "https://example.com/1"}, {URL: "https://example.com/2"}}}}
	c, settings := testController(t, eng)

	url := "https://example.com/watch?v=1&list=P"
	if err := runDownload(context.Background(), c, settings, url, downloadOpts{noPlaylist: true, format: "720p"}); err != nil {
		t.Fatalf("runDownload: %v", err)
	}
	if len(eng.got) != 1 || eng.got[0] != url {
		t.Errorf("engine got %v, want only %q", eng.got, url)
	}
}

// TestRunDownloadPlaylist checks every entry of a playlist is downloaded.
func TestRunDownloadPlaylist(t *testing.T) {
	t.Parallel()

	eng := &playlistEngine{info: &engine.Info{Type: "playlist", Title: "P", Entries: []engine.Entry{{URL: "https://example.com/1"}, {URL: "https://example.com/2"}}}}
	c, settings := testController(t, eng)

	if err := runDownload(context.Background(), c, settings, "https://example.com/list", downloadOpts{format: "mp3"}); err != nil {
		t.Fatalf("runDownload: %v", err)
	}
	if len(eng.got) != 2 {
		t.Errorf("engine got %v, want both entries", eng.got)
	}
}
