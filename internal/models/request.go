package models

// TrimRange restricts a single download to [StartSec, EndSec).
type TrimRange struct {
	StartSec int
	EndSec   int
}

// Valid reports whether EndSec > StartSec >= 0.
func (t TrimRange) Valid() bool {
	return t.StartSec >= 0 && t.EndSec > t.StartSec
}

// DownloadRequest is one user request, before it is built into an engine configuration.
type DownloadRequest struct {
	URL            string
	DestinationDir string
	FormatKey      string
	Trim           *TrimRange
	Settings       Settings
}
