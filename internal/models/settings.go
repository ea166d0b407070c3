package models

import (
	"os"
	"path/filepath"
)

// Settings is the persisted user settings document.
type Settings struct {
	DownloadPath      string `json:"download_path"`
	Theme             string `json:"theme"`
	DefaultFormat     string `json:"default_format"`
	CookiesPath       string `json:"cookies_path"`
	EmbedThumbnail    bool   `json:"embed_thumbnail"`
	EmbedMetadata     bool   `json:"embed_metadata"`
	DownloadSubtitles bool   `json:"download_subtitles"`
	ProxyURL          string `json:"proxy_url"`
	SpeedLimit        string `json:"speed_limit"`
	Notifications     bool   `json:"notifications"`
	ClipboardMonitor  bool   `json:"clipboard_monitor"`
}

// DefaultSettings returns the settings used when no document exists.
func DefaultSettings() Settings {
	dl := "downloads"
	if wd, err := os.Getwd(); err == nil {
		dl = filepath.Join(wd, "downloads")
	}
	return Settings{
		DownloadPath:   dl,
		Theme:          "System",
		DefaultFormat:  "Video",
		EmbedThumbnail: true,
		EmbedMetadata:  true,
		Notifications:  true,
	}
}
