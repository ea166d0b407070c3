// Package consts holds program-wide constants.
package consts

import "time"

// Persistent store.
const (
	HistoryCap = 50
)

// Orchestration timing.
const (
	EntryPause       = 1 * time.Second
	QueueChainDelay  = 1500 * time.Millisecond
	DisplayThrottle  = 100 * time.Millisecond
	TrackerFlush     = 500 * time.Millisecond
	TrackerTimeout   = 5 * time.Second
	TrackerRetries   = 3
	TrackerBackoff   = 100 * time.Millisecond
	MetadataTimeout  = 2 * time.Minute
	ThumbParallelism = 4
)

// Engine network policy.
const (
	EngineRetries         = 15
	EngineFragmentRetries = 15
	EngineSocketTimeout   = 15 // seconds
	EngineHTTPChunkSize   = 10485760
	MergeOutputFormat     = "mp4"
)

// Disk space warnings.
const (
	MinFreeSingleGB    = 2.0
	PerEntryPlaylistGB = 0.5
)

// Live stream warning threshold.
const LongStreamSeconds = 10 * 60 * 60

// Labels.
const (
	DateLayout         = "2006-01-02 15:04"
	UnknownUploader    = "Unknown"
	DefaultPlaylistDir = "Playlist"
	PendingTitle       = "Pending - Click Check first"
	NotifyAppName      = "vidgrab"
)
