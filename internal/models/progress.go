package models

// Phase is the coarse state of a download.
type Phase string

const (
	PhaseDownloading Phase = "downloading"
	PhaseMerging     Phase = "merging"
	PhaseDone        Phase = "done"
	PhaseError       Phase = "error"
)

// ContentType is the kind of stream currently being fetched.
type ContentType string

const (
	ContentVideo   ContentType = "Video"
	ContentAudio   ContentType = "Audio"
	ContentUnknown ContentType = "Content"
)

// ProgressEvent is the normalized progress of one download.
//
// Nil pointers mean the value is unknown.
type ProgressEvent struct {
	Phase           Phase
	DownloadedBytes int64
	TotalBytes      *int64
	SpeedBytes      *float64
	ETASeconds      *int64
	ContentType     ContentType
}

// Fraction returns downloaded/total in [0, 1]. ok is false when the total is unknown.
func (p ProgressEvent) Fraction() (f float64, ok bool) {
	if p.TotalBytes == nil || *p.TotalBytes <= 0 {
		return 0, false
	}
	f = float64(p.DownloadedBytes) / float64(*p.TotalBytes)
	if f > 1 {
		f = 1
	}
	return f, true
}
