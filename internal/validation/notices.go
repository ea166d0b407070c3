package validation

import (
	"fmt"

	"vidgrab/internal/command/builder"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/engine"
)

var heightNames = map[int]string{
	2160: "4K",
	1440: "2K",
	1080: "1080p",
	720:  "720p",
	480:  "480p",
}

// FormatNotice returns a notice when the requested resolution exceeds what is available.
func FormatNotice(formatKey string, maxHeight int) string {
	requested, ok := builder.Heights[formatKey]
	if !ok || maxHeight <= 0 || requested <= maxHeight {
		return ""
	}
	name, ok := heightNames[maxHeight]
	if !ok {
		name = fmt.Sprintf("%dp", maxHeight)
	}
	return "Notice: This video only supports up to " + name + ". Downloading at the highest available quality instead."
}

// LiveNotice warns about live streams and very long past streams.
func LiveNotice(info *engine.Info) string {
	switch {
	case info == nil:
		return ""
	case info.IsLive:
		return "⚠️ This is a LIVE stream! Downloading may run indefinitely and fill disk space."
	case info.WasLive && (info.Duration == 0 || info.Duration > consts.LongStreamSeconds):
		return "⚠️ This appears to be a long stream recording. Consider trimming."
	}
	return ""
}

// DiskSpaceNotice warns when free space at path looks too small.
//
// entries is 0 for a single video.
func DiskSpaceNotice(path string, entries int) string {
	free, err := FreeGB(path)
	if err != nil || free <= 0 {
		return ""
	}
	return diskSpaceNotice(free, entries)
}

func diskSpaceNotice(freeGB float64, entries int) string {
	if entries == 0 {
		if freeGB < consts.MinFreeSingleGB {
			return fmt.Sprintf("⚠️ Low disk space! Only %.1fGB free. Download may fail.", freeGB)
		}
		return ""
	}
	need := float64(entries) * consts.PerEntryPlaylistGB
	if freeGB < need {
		return fmt.Sprintf("⚠️ Low disk space! %.1fGB free, playlist may need ~%.0fGB.", freeGB, need)
	}
	return ""
}
