// Package keys holds viper configuration keys.
package keys

// Root flags.
const (
	DebugLevel  = "debug"
	DataDir     = "data-dir"
	YTDLPPath   = "ytdlp"
	AssumeYes   = "yes"
	ThumbsFetch = "fetch-thumbs"
)

// Download flags.
const (
	Format     = "format"
	Dest       = "dest"
	TrimStart  = "trim-start"
	TrimEnd    = "trim-end"
	Playlist   = "playlist"
	NoPlaylist = "no-playlist"
)

// Listing flags.
const (
	Since = "since"
	Limit = "limit"
	RunID = "run"
)

// EnvPrefix is the prefix for environment overrides (VIDGRAB_DEBUG etc).
const EnvPrefix = "vidgrab"
