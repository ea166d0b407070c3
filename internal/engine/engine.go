// Package engine defines the extraction-and-download engine contract and its yt-dlp adapter.
package engine

import (
	"context"

	"vidgrab/internal/command/builder"
)

// RawKind tells download progress apart from post-processing events.
type RawKind int

const (
	RawDownload RawKind = iota
	RawPostprocess
)

// RawEvent is one unnormalized event reported by the engine during a download.
//
// Nil pointers are values the engine did not report.
type RawEvent struct {
	Kind               RawKind
	Status             string
	DownloadedBytes    *int64
	TotalBytes         *int64
	TotalBytesEstimate *float64
	Speed              *float64
	ETA                *int64
	VCodec             string
	ACodec             string
	Postprocessor      string
}

// Hook receives raw events. A returned error aborts the download with that error.
type Hook func(RawEvent) error

// Engine fetches metadata and downloads single URLs.
type Engine interface {
	FetchMetadata(ctx context.Context, url string) (*Info, error)
	Download(ctx context.Context, url string, cfg builder.EngineConfig, hook Hook) error
}

// DownloadError is a failure the engine itself reported.
type DownloadError struct {
	Msg      string
	ExitCode int
}

func (e *DownloadError) Error() string {
	return e.Msg
}
