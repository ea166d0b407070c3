package progress

import (
	"fmt"

	"vidgrab/internal/models"

	"github.com/dustin/go-humanize"
)

const (
	notAvailable = "N/A"
	mergingText  = "Merging Video & Audio..."
)

// Describe renders a progress event as a one-line status text.
func Describe(ev models.ProgressEvent) string {
	switch ev.Phase {
	case models.PhaseMerging:
		return mergingText
	case models.PhaseDone:
		return "✔ Done"
	case models.PhaseError:
		return "Failed"
	}

	size := notAvailable
	if ev.TotalBytes != nil {
		size = humanize.IBytes(uint64(*ev.TotalBytes))
	}
	speed := notAvailable
	if ev.SpeedBytes != nil && *ev.SpeedBytes > 0 {
		speed = humanize.IBytes(uint64(*ev.SpeedBytes)) + "/s"
	}
	pct := notAvailable
	if f, ok := ev.Fraction(); ok {
		pct = fmt.Sprintf("%.1f%%", f*100)
	}
	return fmt.Sprintf("Downloading %s... | Size: %s • Speed: %s • Progress: %s", ev.ContentType, size, speed, pct)
}

// SizeLabel returns a human readable size, or N/A when unknown.
func SizeLabel(total *int64) string {
	if total == nil || *total <= 0 {
		return notAvailable
	}
	return humanize.IBytes(uint64(*total))
}
