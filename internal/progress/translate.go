// Package progress normalizes raw engine events into progress events.
package progress

import (
	"errors"

	"vidgrab/internal/engine"
	"vidgrab/internal/models"
)

// ErrCancelled is returned when the cancellation predicate is set.
var ErrCancelled = errors.New("download cancelled by user")

// Raw statuses reported by the engine.
const (
	statusDownloading = "downloading"
	statusError       = "error"
	statusStarted     = "started"
)

var mergeProcessors = map[string]bool{
	"Merger":       true,
	"FFmpegMerger": true,
}

// Translate converts one raw event. ok is false when the event produces no progress event.
//
// isCancelled is checked before anything else; when it reports true Translate returns ErrCancelled.
func Translate(raw engine.RawEvent, isCancelled func() bool) (ev models.ProgressEvent, ok bool, err error) {
	if isCancelled != nil && isCancelled() {
		return models.ProgressEvent{}, false, ErrCancelled
	}

	switch raw.Kind {
	case engine.RawDownload:
		switch raw.Status {
		case statusDownloading:
			return downloading(raw), true, nil
		case statusError:
			return models.ProgressEvent{Phase: models.PhaseError, ContentType: ContentTypeOf(raw.VCodec, raw.ACodec)}, true, nil
		}

	case engine.RawPostprocess:
		if raw.Status == statusStarted && mergeProcessors[raw.Postprocessor] {
			return models.ProgressEvent{Phase: models.PhaseMerging, ContentType: models.ContentUnknown}, true, nil
		}
	}
	return models.ProgressEvent{}, false, nil
}

func downloading(raw engine.RawEvent) models.ProgressEvent {
	ev := models.ProgressEvent{
		Phase:       models.PhaseDownloading,
		SpeedBytes:  raw.Speed,
		ETASeconds:  raw.ETA,
		ContentType: ContentTypeOf(raw.VCodec, raw.ACodec),
	}
	if raw.DownloadedBytes != nil {
		ev.DownloadedBytes = *raw.DownloadedBytes
	}

	switch {
	case raw.TotalBytes != nil && *raw.TotalBytes > 0:
		total := *raw.TotalBytes
		ev.TotalBytes = &total
	case raw.TotalBytesEstimate != nil && *raw.TotalBytesEstimate > 0:
		total := int64(*raw.TotalBytesEstimate)
		ev.TotalBytes = &total
	}
	return ev
}

// ContentTypeOf infers the stream type from its codecs. Empty and "none" mean no codec.
func ContentTypeOf(vcodec, acodec string) models.ContentType {
	hasV := vcodec != "" && vcodec != "none"
	hasA := acodec != "" && acodec != "none"
	switch {
	case hasV && !hasA:
		return models.ContentVideo
	case hasA && !hasV:
		return models.ContentAudio
	}
	return models.ContentUnknown
}
